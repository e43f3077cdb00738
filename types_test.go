package tranche

import (
	"reflect"
	"testing"
)

func TestDedupe(t *testing.T) {
	specs := map[string]struct {
		Updates ValidatorUpdates
		Exp     ValidatorUpdates
		ExpZero ValidatorUpdates
	}{

		"Empty": {
			Updates: ValidatorUpdates{},
			Exp:     ValidatorUpdates{},
			ExpZero: ValidatorUpdates{},
		},
		"No Duplicates or zeroes": {
			Updates: ValidatorUpdates{
				ValidatorUpdates: []ValidatorUpdate{
					{Power: 1, PubKey: PubKey{Type: "123", Data: []byte("12")}},
					{Power: 3, PubKey: PubKey{Type: "123", Data: []byte("1234")}},
					{Power: 6, PubKey: PubKey{Type: "12", Data: []byte("1234")}},
				},
			},
			Exp: ValidatorUpdates{
				ValidatorUpdates: []ValidatorUpdate{
					{Power: 1, PubKey: PubKey{Type: "123", Data: []byte("12")}},
					{Power: 3, PubKey: PubKey{Type: "123", Data: []byte("1234")}},
					{Power: 6, PubKey: PubKey{Type: "12", Data: []byte("1234")}}},
			},
			ExpZero: ValidatorUpdates{
				ValidatorUpdates: []ValidatorUpdate{
					{Power: 1, PubKey: PubKey{Type: "123", Data: []byte("12")}},
					{Power: 3, PubKey: PubKey{Type: "123", Data: []byte("1234")}},
					{Power: 6, PubKey: PubKey{Type: "12", Data: []byte("1234")}}},
			},
		},
		"Duplicates and zeroes": {
			Updates: ValidatorUpdates{
				ValidatorUpdates: []ValidatorUpdate{
					{Power: 1, PubKey: PubKey{Type: "123", Data: []byte("12")}},
					{Power: 1, PubKey: PubKey{Type: "123", Data: []byte("12")}},
					{Power: 0, PubKey: PubKey{Type: "123", Data: []byte("1234")}},
					{Power: 6, PubKey: PubKey{Type: "12", Data: []byte("1234")}},
				},
			},
			Exp: ValidatorUpdates{
				ValidatorUpdates: []ValidatorUpdate{
					{Power: 1, PubKey: PubKey{Type: "123", Data: []byte("12")}},
					{Power: 0, PubKey: PubKey{Type: "123", Data: []byte("1234")}},
					{Power: 6, PubKey: PubKey{Type: "12", Data: []byte("1234")}},
				}},
			ExpZero: ValidatorUpdates{
				ValidatorUpdates: []ValidatorUpdate{
					{Power: 1, PubKey: PubKey{Type: "123", Data: []byte("12")}},
					{Power: 6, PubKey: PubKey{Type: "12", Data: []byte("1234")}},
				},
			},
		},
	}

	for msg, spec := range specs {
		t.Run(msg, func(t *testing.T) {
			deduped := spec.Updates.Deduplicate(false)
			if exp := spec.Exp.ValidatorUpdates; !reflect.DeepEqual(deduped, exp) && !(len(deduped) == 0 && len(exp) == 0) {
				t.Errorf("want %v, got %v", exp, deduped)
			}

			dedupedZero := spec.Updates.Deduplicate(true)
			if exp := spec.ExpZero.ValidatorUpdates; !reflect.DeepEqual(dedupedZero, exp) && !(len(dedupedZero) == 0 && len(exp) == 0) {
				t.Errorf("want %v, got %v", exp, dedupedZero)
			}
		})
	}
}
