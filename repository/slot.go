package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	session "github.com/campusbook/go-session"
)

// SlotModel is the Bun model for the persisted session slot. The table holds
// at most one row per key; writes upsert so callers never observe a partial
// value.
type SlotModel struct {
	bun.BaseModel `bun:"table:session_slots"`

	Key       string    `bun:"key,pk"`
	Value     []byte    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,default:current_timestamp"`
}

// Slot implements session.Slot on a SQL database, the durable counterpart of
// the browser's local storage slot.
type Slot struct {
	db  *bun.DB
	key string
}

// NewSlot creates a slot bound to the given storage key.
func NewSlot(db *bun.DB, key string) *Slot {
	if key == "" {
		key = session.DefaultStorageKey
	}
	return &Slot{db: db, key: key}
}

// Read implements session.Slot.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	model := &SlotModel{}
	err := s.db.NewSelect().
		Model(model).
		Where("?TableAlias.key = ?", s.key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrSlotEmpty
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read session slot")
	}

	return model.Value, nil
}

// Write implements session.Slot, overwriting any previous value.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	model := &SlotModel{
		Key:       s.key,
		Value:     data,
		UpdatedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write session slot")
	}

	return nil
}

// Clear implements session.Slot. Removing an absent slot is not an error.
func (s *Slot) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*SlotModel)(nil)).
		Where("key = ?", s.key).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to remove session slot")
	}

	return nil
}

var _ session.Slot = (*Slot)(nil)
