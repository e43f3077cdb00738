package migration

import (
	"reflect"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

// Migratable is implemented by both message and model entities that support
// schema versioning. Every migratable entity must maintain its schema version
// as a part of the metadata.
type Migratable interface {
	GetMetadata() *tranche.Metadata
	Validate() error
}

// Migrator is a function that migrates an entity from version migrationTo-1
// to migrationTo. Changes are applied directly on the given entity.
type Migrator func(db tranche.ReadOnlyKVStore, m Migratable) error

// NoModification is a migration function that migrates data that requires no
// change. It should be used to register migrations that do not require any
// modifications.
func NoModification(db tranche.ReadOnlyKVStore, m Migratable) error {
	return nil
}

func newRegister() *register {
	return &register{
		migrations: make(map[payloadVersion]Migrator),
	}
}

type register struct {
	migrations map[payloadVersion]Migrator
}

// payloadVersion references a message or a model at a given schema version.
type payloadVersion struct {
	payload reflect.Type
	version uint32
}

func (r *register) MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	if err := r.Register(migrationTo, m, fn); err != nil {
		panic(err)
	}
}

func (r *register) Register(migrationTo uint32, m Migratable, fn Migrator) error {
	if migrationTo < 1 {
		return errors.Wrapf(errors.ErrInput, "migration to version %d is not allowed", migrationTo)
	}
	tp := reflect.TypeOf(m)
	for tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	if tp.Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrInput, "only struct can be migrated, got %T", m)
	}

	// Migrations must be registered sequentially, starting with version 1.
	if migrationTo > 1 {
		prev := payloadVersion{payload: tp, version: migrationTo - 1}
		if _, ok := r.migrations[prev]; !ok {
			return errors.Wrapf(errors.ErrInput, "missing %d version migration", prev.version)
		}
	}

	pv := payloadVersion{
		payload: tp,
		version: migrationTo,
	}
	if _, ok := r.migrations[pv]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "already registered: %s.%s:%d", tp.PkgPath(), tp.Name(), migrationTo)
	}
	r.migrations[pv] = fn
	return nil
}

func (r *register) Apply(db tranche.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	if migrateTo < 1 {
		return errors.Wrapf(errors.ErrInput, "migration to version %d is not allowed", migrateTo)
	}
	tp := reflect.TypeOf(m)
	for tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	if tp.Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrInput, "only struct can be migrated, got %T", m)
	}

	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrap(errors.ErrMetadata, "nil metadata")
	}
	for v := meta.Schema + 1; v <= migrateTo; v++ {
		migrate, ok := r.migrations[payloadVersion{payload: tp, version: v}]
		if !ok {
			return errors.Wrapf(errors.ErrSchema, "migration to version %d missing", v)
		}
		if err := migrate(db, m); err != nil {
			return errors.Wrapf(err, "migration to version %d", v)
		}
		meta.Schema = v
	}

	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "validation")
	}
	return nil
}

// reg is a globally available register instance that must be used during the
// runtime to register migration handlers.
// Register is declared as a separate type so that it can be tested without
// worrying about the global state.
var reg *register = newRegister()

// MustRegister registers a migration function for a given entity and version.
// Migrations must be registered sequentially, starting with version 1.
func MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	reg.MustRegister(migrationTo, m, fn)
}

// Apply updates an entity by applying all missing data migrations. Even a no
// modification migration is updating the metadata to point to the latest data
// format version.
//
// Because changes are applied directly on the passed entity, even if this
// function fails some of the data migrations might be applied.
//
// Validation method is called only on the final version of the entity.
func Apply(db tranche.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	return reg.Apply(db, m, migrateTo)
}
