package validators

import (
	"testing"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

func validPubKey() tranche.PubKey {
	return tranche.PubKey{
		Type: "ed25519",
		Data: make([]byte, 32),
	}
}

func TestApplyDiffMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     ApplyDiffMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: ApplyDiffMsg{
				Metadata: &tranche.Metadata{Schema: 1},
				ValidatorUpdates: []tranche.ValidatorUpdate{
					{PubKey: validPubKey(), Power: 10},
				},
			},
		},
		"missing metadata": {
			msg: ApplyDiffMsg{
				ValidatorUpdates: []tranche.ValidatorUpdate{
					{PubKey: validPubKey(), Power: 10},
				},
			},
			wantErr: errors.ErrMetadata,
		},
		"empty validator set": {
			msg: ApplyDiffMsg{
				Metadata: &tranche.Metadata{Schema: 1},
			},
			wantErr: errors.ErrEmpty,
		},
		"wrong public key type": {
			msg: ApplyDiffMsg{
				Metadata: &tranche.Metadata{Schema: 1},
				ValidatorUpdates: []tranche.ValidatorUpdate{
					{PubKey: tranche.PubKey{Type: "rsa", Data: make([]byte, 32)}, Power: 10},
				},
			},
			wantErr: errors.ErrType,
		},
		"negative power": {
			msg: ApplyDiffMsg{
				Metadata: &tranche.Metadata{Schema: 1},
				ValidatorUpdates: []tranche.ValidatorUpdate{
					{PubKey: validPubKey(), Power: -3},
				},
			},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}

func TestApplyDiffMsgAsDiffDeduplicates(t *testing.T) {
	key := validPubKey()
	msg := ApplyDiffMsg{
		Metadata: &tranche.Metadata{Schema: 1},
		ValidatorUpdates: []tranche.ValidatorUpdate{
			{PubKey: key, Power: 10},
			{PubKey: key, Power: 4},
		},
	}
	diff := msg.AsDiff()
	if len(diff) != 1 {
		t.Fatalf("want a single update, got %d", len(diff))
	}
	if diff[0].Power != 4 {
		t.Fatalf("want the last update to win, got power %d", diff[0].Power)
	}
}
