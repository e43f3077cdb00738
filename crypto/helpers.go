package crypto

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

// ExtensionName is the extension part of the conditions created from
// signatures. It must match what x/sigs uses so addresses derived from a
// public key resolve to the same account.
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() tranche.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

//-------- unwrappers --------
// enforce that all of the one-ofs implement some interfaces

// unwrap a PublicKey struct into a PubKey interface
func (p PublicKey) unwrap() PubKey {
	pub := p.GetPub()
	if pub == nil {
		return nil
	}
	return pub.(PubKey)
}

// unwrap a PrivateKey struct into a Signer interface
func (p PrivateKey) unwrap() Signer {
	priv := p.GetPriv()
	if priv == nil {
		return nil
	}
	return priv.(Signer)
}

//-------- implement interfaces in protobuf --------------

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	in := p.unwrap()
	if in == nil {
		return false
	}
	return in.Verify(message, sig)
}

// Condition generates a Condition object to represent a valid
// signature.
//    p.Condition().Address()
// will return an Address if needed.
func (p *PublicKey) Condition() tranche.Condition {
	in := p.unwrap()
	if in == nil {
		return nil
	}
	return in.Condition()
}

// Address is a convenience method to get the Address of the Condition of
// this public key. Returns nil for an empty key.
func (p *PublicKey) Address() tranche.Address {
	cond := p.Condition()
	if cond == nil {
		return nil
	}
	return cond.Address()
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	in := p.unwrap()
	if in == nil {
		return nil, errors.Wrap(errors.ErrMsg, "unknown or missing key")
	}
	return in.Sign(message)
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	return p.unwrap().PublicKey()
}
