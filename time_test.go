package tranche

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/tranche-io/tranche/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"negative time as string": {
			raw:     `"1950-01-01T01:00:00+01:00"`,
			wantErr: errors.ErrInput,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.wantTime {
				t.Fatalf("want %d time, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour + 4*time.Second)

	unow := AsUnixTime(now)
	ufuture := unow.Add(time.Hour + 4*time.Second)

	if future.Unix() != int64(ufuture) {
		t.Fatalf("want %d, got %d", future.Unix(), ufuture)
	}
}

func TestUnixDurationUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantDur UnixDuration
		wantErr *errors.Error
	}{
		"number of seconds": {
			raw:     "119",
			wantDur: 119,
		},
		"zero seconds": {
			raw:     "0",
			wantDur: 0,
		},
		"duration string": {
			raw:     `"2m"`,
			wantDur: 120,
		},
		"compound duration string": {
			raw:     `"1h2m3s"`,
			wantDur: 3723,
		},
		"invalid duration string": {
			raw:     `"13 monkeys"`,
			wantErr: errors.ErrInput,
		},
		"invalid format": {
			raw:     `{"duration": 4}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixDuration
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.wantDur {
				t.Fatalf("want %d duration, got %d", tc.wantDur, got)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	ctx := WithBlockTime(context.Background(), now)

	future := AsUnixTime(now.Add(5 * time.Minute))
	if IsExpired(ctx, future) {
		t.Error("future is expired")
	}

	past := AsUnixTime(now.Add(-5 * time.Minute))
	if !IsExpired(ctx, past) {
		t.Error("past is not expired")
	}

	// Expiration is inclusive, the exact block time is already expired.
	if !IsExpired(ctx, AsUnixTime(now)) {
		t.Error("block time is not expired")
	}
}

func TestIsExpiredRequiresBlockTime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	IsExpired(context.Background(), AsUnixTime(time.Now()))
}
