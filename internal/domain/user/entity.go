package user

import (
	"time"

	"github.com/google/uuid"
)

const StateActive State = "ACTIVE"

type (
	UUID  = uuid.UUID
	State string
	User  struct {
		UUID         UUID
		FullName     string
		Email        string
		State        State
		PasswordHash string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

// NewUser builds a record ready for insertion: fresh random id, ACTIVE state
// and both timestamps set to now.
func NewUser(fullName, email, passwordHash string, now time.Time) User {
	ts := now.UTC()

	return User{
		UUID:         uuid.New(),
		FullName:     fullName,
		Email:        email,
		State:        StateActive,
		PasswordHash: passwordHash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}
