package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(scanTargets(u)...); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByID, uuid).Scan(scanTargets(u)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

// CreateUser relies on the unique index on users.email; a duplicate surfaces
// as user.ErrEmailAlreadyExists and nothing is written.
func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.UUID, req.FullName, req.Email, string(req.State), req.PasswordHash, req.CreatedAt, req.UpdatedAt,
	).Scan(scanTargets(u)...)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func scanTargets(u *User) []any {
	return []any{
		&u.UUID,
		&u.FullName,
		&u.Email,
		&u.State,
		&u.PasswordHash,

		&u.CreatedAt,
		&u.UpdatedAt,
	}
}
