package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"

	session "github.com/campusbook/go-session"
)

// Manager bundles the persistence-backed session collaborators so callers
// wire a single dependency.
type Manager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() *Directory
	Slot() *Slot
	CreateTables(ctx context.Context) error
}

type mngr struct {
	db    *bun.DB
	users *Directory
	slot  *Slot
}

func NewManager(db *bun.DB, storageKey string) Manager {
	return &mngr{
		db:    db,
		users: NewDirectory(db),
		slot:  NewSlot(db, storageKey),
	}
}

func (m mngr) Validate() error {
	if m.db == nil {
		return errors.New("repository db should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.slot == nil {
		return errors.New("repository slot should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() *Directory {
	return m.users
}

func (m mngr) Slot() *Slot {
	return m.slot
}

// CreateTables bootstraps the schema. Meant for examples and tests; real
// deployments run migrations.
func (m mngr) CreateTables(ctx context.Context) error {
	if _, err := m.db.NewCreateTable().
		Model((*session.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	if _, err := m.db.NewCreateTable().
		Model((*SlotModel)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	return nil
}
