package session

import (
	"context"

	"github.com/google/uuid"
)

// Directory is the external, read-only collection of known user records.
// Lookup is by exact, case-sensitive email equality; the session core never
// writes through this interface.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// MemoryDirectory serves a fixed roster from memory, standing in for the
// portal backend during development and tests.
type MemoryDirectory struct {
	users []User
}

func NewMemoryDirectory(users ...User) *MemoryDirectory {
	return &MemoryDirectory{users: users}
}

func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	for i := range d.users {
		if d.users[i].Email == email {
			return d.users[i].Clone(), nil
		}
	}

	return nil, ErrUserNotFound
}

// MockUsers returns the demo roster for the tutoring portal.
func MockUsers() []User {
	return []User{
		{
			ID:        uuid.MustParse("8a4bb22e-3c1f-4a8e-9e61-0f6c1a2d5b01"),
			Name:      "Alice Pham",
			Email:     "alice@example.edu",
			Role:      RoleStudent,
			AvatarURL: "/assets/avatars/alice.png",
		},
		{
			ID:        uuid.MustParse("2f7d9c40-11ab-4f5e-8c37-6d8e5b9a3c02"),
			Name:      "Bob Tran",
			Email:     "bob@example.edu",
			Role:      RoleTutor,
			AvatarURL: "/assets/avatars/bob.png",
		},
		{
			ID:    uuid.MustParse("c1e8f5a2-7b3d-4960-b4ff-92a61d7e4f03"),
			Name:  "Carol Vu",
			Email: "carol@example.edu",
			Role:  RoleTutor,
		},
		{
			ID:    uuid.MustParse("5d203b18-94ce-47d1-a2b9-38c7f0e6da04"),
			Name:  "Dan Le",
			Email: "dan@example.edu",
			Role:  RoleStudent,
		},
		{
			ID:        uuid.MustParse("e96a7c33-62d5-48fb-9c08-14b5a8d2ef05"),
			Name:      "Eve Nguyen",
			Email:     "eve@example.edu",
			Role:      RoleAdmin,
			AvatarURL: "/assets/avatars/eve.png",
		},
	}
}
