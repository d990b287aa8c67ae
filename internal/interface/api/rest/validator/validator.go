package validator

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"user-registry-api/internal/interface/api/rest/dto/user"
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateRegistration checks presence and shape only. Values are not
// normalised; the service stores exactly what the caller sent.
func ValidateRegistration(r user.Request) map[string]string {
	errs := make(map[string]string)

	// fullName (required)
	if strings.TrimSpace(r.FullName) == "" {
		errs["fullName"] = "fullName is required"
	}

	// email (required + format)
	if email := strings.TrimSpace(r.Email); email == "" {
		errs["email"] = "email is required"
	} else if !isEmail(r.Email) {
		errs["email"] = "Email should be valid"
	}

	// password (required); Base64 is checked by the service
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// isEmail accepts a bare address only, "Name <a@b>" forms are rejected.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
