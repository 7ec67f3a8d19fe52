package repository

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	session "github.com/campusbook/go-session"
)

// Directory implements session.Directory over a users table. The session
// core only reads through it; Seed exists so deployments and tests can load
// a roster.
type Directory struct {
	repository.Repository[*session.User]
	db *bun.DB
}

func NewDirectory(db *bun.DB) *Directory {
	repo := repository.NewRepository[*session.User](db, repository.ModelHandlers[*session.User]{
		NewRecord: func() *session.User { return &session.User{} },
		GetID: func(u *session.User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *session.User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &Directory{
		Repository: repo,
		db:         db,
	}
}

// FindByEmail implements session.Directory with exact, case-sensitive
// equality on the email column.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*session.User, error) {
	record := &session.User{}
	err := d.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, session.ErrUserNotFound
		}
		return nil, err
	}

	return record, nil
}

// Seed loads the given roster, skipping records that already exist.
func (d *Directory) Seed(ctx context.Context, users []session.User) error {
	for i := range users {
		record := users[i]

		_, err := d.FindByEmail(ctx, record.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, session.ErrUserNotFound) {
			return err
		}

		if _, err := d.Repository.CreateTx(ctx, d.db, &record); err != nil {
			return err
		}
	}
	return nil
}

var _ session.Directory = (*Directory)(nil)
