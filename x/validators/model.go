package validators

import (
	"fmt"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/orm"
)

func init() {
	migration.MustRegister(1, &Accounts{}, migration.NoModification)
}

const (
	// bucketName contains address that are allowed to update validators
	bucketName     = "uvalid"
	accountListKey = "accounts"
)

// AccountList is used to parse the json from genesis file
// use tranche.Address, so address in hex, not base64
type AccountList struct {
	Addresses []tranche.Address `json:"addresses"`
}

func (al AccountList) Validate() error {
	var errs error
	for i, v := range al.Addresses {
		errs = errors.AppendField(errs, fmt.Sprintf("Addresses.%d", i), v.Validate())
	}
	return errs
}

func AsAccountList(a *Accounts) AccountList {
	addrs := make([]tranche.Address, len(a.Addresses))
	for k, v := range a.Addresses {
		addrs[k] = tranche.Address(v)
	}
	return AccountList{Addresses: addrs}
}

func AsAccounts(a AccountList) *Accounts {
	addrs := make([][]byte, len(a.Addresses))
	for k, v := range a.Addresses {
		addrs[k] = []byte(v)
	}
	return &Accounts{
		Metadata:  &tranche.Metadata{Schema: 1},
		Addresses: addrs,
	}
}

func (m *Accounts) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.Append(errs, AsAccountList(m).Validate())
	return errs
}

// Copy produces a deep copy of the account list.
func (m *Accounts) Copy() orm.CloneableData {
	addrs := make([][]byte, len(m.Addresses))
	for k, v := range m.Addresses {
		addrs[k] = append([]byte{}, v...)
	}
	return &Accounts{
		Metadata:  m.Metadata.Copy(),
		Addresses: addrs,
	}
}

type AccountBucket struct {
	migration.Bucket
}

func NewAccountBucket() *AccountBucket {
	return &AccountBucket{
		Bucket: migration.NewBucket("validators", bucketName, orm.NewSimpleObj(nil, &Accounts{})),
	}
}

func (b *AccountBucket) GetAccounts(kv tranche.ReadOnlyKVStore) (*Accounts, error) {
	res, err := b.Get(kv, []byte(accountListKey))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "account")
	}
	acc, ok := res.Value().(*Accounts)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", res.Value())
	}
	return acc, nil
}

func AccountsWith(acct AccountList) orm.Object {
	acc := AsAccounts(acct)
	return orm.NewSimpleObj([]byte(accountListKey), acc)
}
