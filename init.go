package tranche

import (
	"bytes"
	"encoding/json"

	"github.com/tranche-io/tranche/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, GenesisParams, KVStore) error
}

// GenesisParams represents parameters set in genesis that could be useful
// for some of the extensions.
type GenesisParams struct {
	Validators []abci.ValidatorUpdate
}

// FromInitChain initializes GenesisParams using values from the given
// InitChain request.
func FromInitChain(req abci.RequestInitChain) GenesisParams {
	return GenesisParams{
		Validators: req.Validators,
	}
}

// Options are the app options
// Each extension can look up its key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q: %s", key, err)
	}
	return nil
}

// Stream expects an array of json elements under the given key and returns
// a function that deserializes them one element per call. When all elements
// are consumed a call returns errors.ErrEmpty and every further call fails
// with errors.ErrState.
func (o Options) Stream(key string) (func(obj interface{}) error, error) {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no data under key %q", key)
	}

	var (
		dec    = json.NewDecoder(bytes.NewReader(raw))
		opened bool
		closed bool
	)

	return func(obj interface{}) error {
		if closed {
			return errors.Wrap(errors.ErrState, "stream exhausted")
		}
		if !opened {
			// The opening bracket is consumed lazily so that a
			// malformed payload surfaces on the first read, not
			// when the stream is created.
			tok, err := dec.Token()
			if err != nil {
				closed = true
				return errors.Wrapf(errors.ErrInput, "cannot read token: %s", err)
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				closed = true
				return errors.Wrap(errors.ErrInput, "expected an array")
			}
			opened = true
		}
		if !dec.More() {
			closed = true
			return errors.Wrap(errors.ErrEmpty, "stream depleted")
		}
		if err := dec.Decode(obj); err != nil {
			closed = true
			return errors.Wrapf(errors.ErrInput, "cannot decode element: %s", err)
		}
		return nil
	}, nil
}
