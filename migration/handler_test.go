package migration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/gconf"
	"github.com/tranche-io/tranche/store"
	"github.com/tranche-io/tranche/tranchetest"
	"github.com/tranche-io/tranche/tranchetest/assert"
)

func TestSchemaMigratingHandler(t *testing.T) {
	const thisPkgName = "testpkg"

	reg := newRegister()

	reg.MustRegister(1, &MyMsg{}, NoModification)
	reg.MustRegister(2, &MyMsg{}, func(db tranche.ReadOnlyKVStore, m Migratable) error {
		msg := m.(*MyMsg)
		msg.Content += " m2"
		return msg.err
	})
	reg.MustRegister(3, &MyMsg{}, func(db tranche.ReadOnlyKVStore, m Migratable) error {
		panic("not implemented")
	})

	db := store.MemStore()

	schema := NewSchemaBucket()
	if _, err := schema.Create(db, &Schema{Metadata: &tranche.Metadata{Schema: 1}, Pkg: thisPkgName, Version: 1}); err != nil {
		t.Fatalf("cannot register schema version: %s", err)
	}

	handler := SchemaMigratingHandler(thisPkgName, &tranchetest.Handler{})
	// Use custom register reference so that our test is not polluted by
	// extenrnal registrations.
	handler.(*schemaMigratingHandler).migrations = reg

	var err error

	// Message has the same schema version as currently active one. No
	// migration should be applied.
	// Handler is modyfing/migrating message in place so we can use `msg`
	// reference to check migrated message state.
	msg := &MyMsg{
		Metadata: &tranche.Metadata{Schema: 1},
		Content:  "foo",
	}
	_, err = handler.Check(nil, db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, msg.Metadata.Schema, uint32(1))
	assert.Equal(t, msg.Content, "foo")
	_, err = handler.Deliver(nil, db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, msg.Metadata.Schema, uint32(1))
	assert.Equal(t, msg.Content, "foo")

	// Upgrade the schema an ensure all further handler calls are migrating
	// the schema as well.
	if _, err := schema.Create(db, &Schema{Metadata: &tranche.Metadata{Schema: 1}, Pkg: thisPkgName, Version: 2}); err != nil {
		t.Fatalf("cannot register schema version: %s", err)
	}

	_, err = handler.Check(nil, db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, msg.Metadata.Schema, uint32(2))
	assert.Equal(t, msg.Content, "foo m2")
	_, err = handler.Deliver(nil, db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, msg.Metadata.Schema, uint32(2))
	assert.Equal(t, msg.Content, "foo m2")

	// If a message is already migrated, it must not be upgraded.
	msg = &MyMsg{
		Metadata: &tranche.Metadata{Schema: 2},
		Content:  "bar",
	}
	_, err = handler.Check(nil, db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, msg.Metadata.Schema, uint32(2))
	assert.Equal(t, msg.Content, "bar")
	_, err = handler.Deliver(nil, db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, msg.Metadata.Schema, uint32(2))
	assert.Equal(t, msg.Content, "bar")
}

type MyMsg struct {
	Metadata *tranche.Metadata
	Content  string

	err error
}

func (msg *MyMsg) GetMetadata() *tranche.Metadata {
	return msg.Metadata
}

func (msg *MyMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return err
	}
	return msg.err
}

func (msg *MyMsg) Marshal() ([]byte, error) {
	return json.Marshal(msg)
}

func (msg *MyMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, &msg)
}

func (MyMsg) Path() string {
	return "testpkg/mymsg"
}

var _ Migratable = (*MyMsg)(nil)
var _ tranche.Msg = (*MyMsg)(nil)

func TestUpgradeSchemaHandler(t *testing.T) {
	adminCond := tranchetest.NewCondition()

	db := store.MemStore()

	config := Configuration{
		Metadata: &tranche.Metadata{Schema: 1},
		Admin:    adminCond.Address(),
	}
	if err := gconf.Save(db, "migration", &config); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}

	MustInitPkg(db, "mypkg")

	auth := &tranchetest.CtxAuth{Key: "auth"}
	handler := upgradeSchemaHandler{
		bucket: NewSchemaBucket(),
		auth:   auth,
	}

	ctx := tranche.WithChainID(context.Background(), "mychain-123")
	ctx = auth.SetConditions(ctx, adminCond)

	// Schema versions can be upgraded only one version at a time.
	skipMsg := &UpgradeSchemaMsg{
		Metadata:  &tranche.Metadata{Schema: 1},
		Pkg:       "mypkg",
		ToVersion: 3,
	}
	if _, err := handler.Deliver(ctx, db, &tranchetest.Tx{Msg: skipMsg}); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected version skipping error: %s", err)
	}

	msg := &UpgradeSchemaMsg{
		Metadata:  &tranche.Metadata{Schema: 1},
		Pkg:       "mypkg",
		ToVersion: 2,
	}
	if _, err := handler.Deliver(ctx, db, &tranchetest.Tx{Msg: msg}); err != nil {
		t.Fatalf("cannot upgrade schema: %s", err)
	}
	ver, err := NewSchemaBucket().CurrentSchema(db, "mypkg")
	assert.Nil(t, err)
	assert.Equal(t, ver, uint32(2))

	// Without the admin signature the upgrade must not be possible.
	strangerCtx := tranche.WithChainID(context.Background(), "mychain-123")
	strangerCtx = auth.SetConditions(strangerCtx, tranchetest.NewCondition())
	next := &UpgradeSchemaMsg{
		Metadata:  &tranche.Metadata{Schema: 1},
		Pkg:       "mypkg",
		ToVersion: 3,
	}
	if _, err := handler.Deliver(strangerCtx, db, &tranchetest.Tx{Msg: next}); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected unauthorized upgrade error: %s", err)
	}
}
