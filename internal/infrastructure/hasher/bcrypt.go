package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"user-registry-api/internal/domain/user"
)

type Bcrypt struct {
	cost int
}

// NewBcrypt falls back to bcrypt.DefaultCost when cost is out of range.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", user.ErrPasswordTooLong
		}
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}

	return string(h), nil
}
