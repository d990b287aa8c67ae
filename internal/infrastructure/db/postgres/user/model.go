package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID         uuid.UUID
		FullName     string
		Email        string
		State        string
		PasswordHash string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
