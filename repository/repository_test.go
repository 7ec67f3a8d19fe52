package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	session "github.com/campusbook/go-session"
)

func setupManager(t *testing.T) (Manager, func()) {
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	m := NewManager(bunDB, "user")
	m.MustValidate()

	require.NoError(t, m.CreateTables(context.Background()))

	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return m, cleanup
}

func TestSlotRoundTrip(t *testing.T) {
	m, cleanup := setupManager(t)
	defer cleanup()

	ctx := context.Background()
	slot := m.Slot()

	_, err := slot.Read(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrSlotEmpty)

	err = slot.Write(ctx, []byte(`{"email":"alice@example.edu"}`))
	require.NoError(t, err)

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"alice@example.edu"}`, string(data))
}

func TestSlotWriteOverwrites(t *testing.T) {
	m, cleanup := setupManager(t)
	defer cleanup()

	ctx := context.Background()
	slot := m.Slot()

	require.NoError(t, slot.Write(ctx, []byte("first")))
	require.NoError(t, slot.Write(ctx, []byte("second")))

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	rows, err := m.(*mngr).db.NewSelect().
		Model((*SlotModel)(nil)).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}

func TestSlotClearIsIdempotent(t *testing.T) {
	m, cleanup := setupManager(t)
	defer cleanup()

	ctx := context.Background()
	slot := m.Slot()

	require.NoError(t, slot.Clear(ctx))

	require.NoError(t, slot.Write(ctx, []byte("value")))
	require.NoError(t, slot.Clear(ctx))
	require.NoError(t, slot.Clear(ctx))

	_, err := slot.Read(ctx)
	assert.ErrorIs(t, err, session.ErrSlotEmpty)
}

func TestDirectoryFindByEmail(t *testing.T) {
	m, cleanup := setupManager(t)
	defer cleanup()

	ctx := context.Background()
	users := m.Users()

	require.NoError(t, users.Seed(ctx, session.MockUsers()))

	found, err := users.FindByEmail(ctx, "alice@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "Alice Pham", found.Name)
	assert.Equal(t, session.RoleStudent, found.Role)

	_, err = users.FindByEmail(ctx, "nobody@example.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrUserNotFound)
}

func TestDirectoryFindByEmailIsCaseSensitive(t *testing.T) {
	m, cleanup := setupManager(t)
	defer cleanup()

	ctx := context.Background()
	users := m.Users()

	require.NoError(t, users.Seed(ctx, session.MockUsers()))

	_, err := users.FindByEmail(ctx, "Alice@Example.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrUserNotFound)
}

func TestDirectorySeedIsIdempotent(t *testing.T) {
	m, cleanup := setupManager(t)
	defer cleanup()

	ctx := context.Background()
	users := m.Users()

	roster := session.MockUsers()
	require.NoError(t, users.Seed(ctx, roster))
	require.NoError(t, users.Seed(ctx, roster))

	count, err := users.db.NewSelect().
		Model((*session.User)(nil)).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(roster), count)
}

func TestManagerValidate(t *testing.T) {
	m := &mngr{}
	require.Error(t, m.Validate())
	assert.Panics(t, m.MustValidate)
}

func TestManagerRunInTxHonorsContext(t *testing.T) {
	m, cleanup := setupManager(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
