package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go

import (
	"context"

	"auth-bridge/app/domain"
)

// UserRepository defines user data access. Create and Update report
// domain.ErrUserAlreadyExists / domain.ErrUserNotFound so that racy
// create-or-update flows can classify outcomes.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error

	// Update refreshes the directory-sourced profile fields. It returns
	// true when the stored record actually changed.
	Update(ctx context.Context, update domain.UserUpdate) (bool, error)

	RecordLogin(ctx context.Context, username string) error
}

// GroupRepository defines site-scoped group data access. Groups are
// identified by (tenant slug, name); create-if-absent is expected to be
// race-safe via unique constraints, with conflicts surfaced as
// domain.ErrGroupAlreadyExists / domain.ErrAlreadyMember.
type GroupRepository interface {
	Exists(ctx context.Context, tenantSlug, name string) (bool, error)
	Create(ctx context.Context, group *domain.Group) error
	UserInGroup(ctx context.Context, tenantSlug, name, username string) (bool, error)
	AddUser(ctx context.Context, tenantSlug, name, username string) error
}
