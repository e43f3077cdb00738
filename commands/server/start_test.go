package server

import (
	"testing"

	"github.com/tranche-io/tranche/coin"
)

func TestParseFlags(t *testing.T) {
	cases := map[string]struct {
		args      []string
		wantAddr  string
		wantDebug bool
		wantFee   coin.Coin
		wantErr   bool
	}{
		"defaults": {
			args:     nil,
			wantAddr: "tcp://localhost:46658",
			wantFee:  coin.NewCoin(0, 0, "TRN"),
		},
		"custom bind and debug": {
			args:      []string{"-bind", "tcp://0.0.0.0:12345", "-debug"},
			wantAddr:  "tcp://0.0.0.0:12345",
			wantDebug: true,
			wantFee:   coin.NewCoin(0, 0, "TRN"),
		},
		"minimum fee": {
			args:     []string{"-min_fee", "1 TRN"},
			wantAddr: "tcp://localhost:46658",
			wantFee:  coin.NewCoin(1, 0, "TRN"),
		},
		"broken minimum fee": {
			args:    []string{"-min_fee", "banana"},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			addr, debug, fee, err := parseFlags(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want a parse failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %+v", err)
			}
			if addr != tc.wantAddr {
				t.Errorf("want address %q, got %q", tc.wantAddr, addr)
			}
			if debug != tc.wantDebug {
				t.Errorf("want debug %v, got %v", tc.wantDebug, debug)
			}
			if !fee.Equals(tc.wantFee) {
				t.Errorf("want fee %v, got %v", tc.wantFee, fee)
			}
		})
	}
}
