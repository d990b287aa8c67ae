package user

import (
	"context"
)

// Repository is the user store. FetchUserByID returns (nil, nil) when the
// record is absent; CreateUser returns ErrEmailAlreadyExists on a duplicate email.
type Repository interface {
	FetchUsers(ctx context.Context) (Users, error)
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
}
