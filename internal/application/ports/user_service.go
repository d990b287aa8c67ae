package ports

import (
	"context"

	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/interface/api/rest/dto/user"
)

type UserService interface {
	FindUsers(ctx context.Context) (user.Users, error)
	FindUserByID(ctx context.Context, uuid domain.UUID) (*user.User, error)
	RegisterUser(ctx context.Context, req user.Request) (*user.User, error)
}
