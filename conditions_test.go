package tranche_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

func TestAddressPrinting(t *testing.T) {
	addr := tranche.Address("ABCD123456LHB")
	if addr.String() == fmt.Sprintf("%X", addr) {
		t.Fatal("address must not print as raw hexadecimal")
	}

	cond := tranche.NewCondition("12", "32", []byte("ABCD123456LHB"))
	if cond.String() == fmt.Sprintf("%X", cond) {
		t.Fatal("condition must not print as raw hexadecimal")
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr tranche.Address
	}{
		"default decoding": {
			json:     `"6865782d616464722d69732d32302d6279746573"`,
			wantAddr: tranche.Address("hex-addr-is-20-bytes"),
		},
		"hex decoding": {
			json:     `"hex:6865782d616464722d69732d32302d6279746573"`,
			wantAddr: tranche.Address("hex-addr-is-20-bytes"),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: tranche.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
		"address too short (19 bytes)": {
			json:    `"hex:00112233445566778899aabbccddeeff001122"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a tranche.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q (want %q)", a, tc.wantAddr)
			}
		})
	}
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition tranche.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: tranche.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero condition": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got tranche.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(got, tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   tranche.Condition
		wantJson string
	}{
		"cond encoding": {
			source:   tranche.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil condition": {
			source:   nil,
			wantJson: `""`,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    tranche.Address
		wantErr *errors.Error
	}{
		"valid address": {
			addr: make(tranche.Address, 20),
		},
		"empty address": {
			addr:    nil,
			wantErr: errors.ErrEmpty,
		},
		"too short": {
			addr:    make(tranche.Address, 19),
			wantErr: errors.ErrInput,
		},
		"too long": {
			addr:    make(tranche.Address, 21),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %s", err)
			}
		})
	}
}

func TestParseAddress(t *testing.T) {
	cond := tranche.NewCondition("foo", "bar", []byte("conditiondata"))

	cases := map[string]struct {
		source   string
		wantErr  *errors.Error
		wantAddr tranche.Address
	}{
		"hex encoded": {
			source:   "6865782d616464722d69732d32302d6279746573",
			wantAddr: tranche.Address("hex-addr-is-20-bytes"),
		},
		"condition encoded": {
			source:   "cond:foo/bar/636f6e646974696f6e64617461",
			wantAddr: cond.Address(),
		},
		"garbage": {
			source:  "foobar:xxx",
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tranche.ParseAddress(tc.source)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantAddr) {
				t.Fatalf("got address %q", got)
			}
		})
	}
}
