package sigs

import (
	"testing"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/tranchetest"
)

func TestBumpSequenceValidate(t *testing.T) {
	cases := map[string]struct {
		Msg     tranche.Msg
		WantErr *errors.Error
	}{
		"valid message": {
			Msg: &BumpSequenceMsg{
				Metadata:  &tranche.Metadata{Schema: 1},
				Increment: 1,
				User:      tranchetest.NewCondition().Address(),
			},
			WantErr: nil,
		},
		"missing user": {
			Msg: &BumpSequenceMsg{
				Metadata:  &tranche.Metadata{Schema: 1},
				Increment: 1,
			},
			WantErr: errors.ErrEmpty,
		},
		"missing metadata": {
			Msg: &BumpSequenceMsg{
				Metadata:  nil,
				Increment: 1,
				User:      tranchetest.NewCondition().Address(),
			},
			WantErr: errors.ErrMetadata,
		},
		"increment too small": {
			Msg: &BumpSequenceMsg{
				Metadata:  &tranche.Metadata{Schema: 1},
				Increment: 0,
				User:      tranchetest.NewCondition().Address(),
			},
			WantErr: errors.ErrMsg,
		},
		"increment too big": {
			Msg: &BumpSequenceMsg{
				Metadata:  &tranche.Metadata{Schema: 1},
				Increment: 1001,
				User:      tranchetest.NewCondition().Address(),
			},
			WantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Msg.Validate()
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected validation error: %s", err)
			}
		})
	}
}
