package tranched

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tranche-io/tranche/tranchetest/assert"
)

func TestGenInitOptions(t *testing.T) {
	cases := map[string]struct {
		args    []string
		ticker  string
		addr    string
		wantErr bool
	}{
		"default ticker and generated address": {
			args:   nil,
			ticker: "TRN",
		},
		"custom ticker": {
			args:   []string{"ONE"},
			ticker: "ONE",
		},
		"custom ticker and address": {
			args:   []string{"TWO", "1234567890"},
			ticker: "TWO",
			addr:   "1234567890",
		},
		"extra arguments are ignored": {
			args:   []string{"THR", "5238975983695", "FOO"},
			ticker: "THR",
			addr:   "5238975983695",
		},
		"invalid ticker": {
			args:    []string{"x"},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			val, err := GenInitOptions(tc.args)
			if tc.wantErr {
				assert.Equal(t, true, err != nil)
				return
			}
			assert.Nil(t, err)

			// the options must be a valid genesis fragment
			var opts map[string]json.RawMessage
			assert.Nil(t, json.Unmarshal(val, &opts))
			for _, key := range []string{"cash", "conf", "initialize_schema", "vesting"} {
				if _, ok := opts[key]; !ok {
					t.Fatalf("missing %q genesis option", key)
				}
			}

			cc := `{"whole": 123456789, "ticker": "` + tc.ticker + `"}`
			assert.Equal(t, true, strings.Contains(string(val), cc))

			if tc.addr != "" {
				ca := `"address": "` + tc.addr + `"`
				assert.Equal(t, true, strings.Contains(string(val), ca))
			}
		})
	}
}
