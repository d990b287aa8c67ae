package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"user-registry-api/internal/interface/api/rest/dto/user"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name string
		req  user.Request
		want map[string]string
	}{
		{
			name: "valid",
			req:  user.Request{FullName: "Pavel Gichevski", Email: "pavel.gichevski@gmail.com", Password: "cGFzc3dvcmQ="},
			want: nil,
		},
		{
			name: "all blank",
			req:  user.Request{FullName: "  ", Email: "", Password: "\t"},
			want: map[string]string{
				"fullName": "fullName is required",
				"email":    "email is required",
				"password": "password is required",
			},
		},
		{
			name: "invalid email",
			req:  user.Request{FullName: "John Doe", Email: "not-an-email", Password: "cGFzc3dvcmQ="},
			want: map[string]string{"email": "Email should be valid"},
		},
		{
			name: "display name form is not a bare address",
			req:  user.Request{FullName: "John Doe", Email: "John <john@example.com>", Password: "cGFzc3dvcmQ="},
			want: map[string]string{"email": "Email should be valid"},
		},
		{
			name: "surrounding spaces are not trimmed away",
			req:  user.Request{FullName: "John Doe", Email: " john@example.com ", Password: "cGFzc3dvcmQ="},
			want: map[string]string{"email": "Email should be valid"},
		},
		{
			name: "password is not decoded here",
			req:  user.Request{FullName: "John Doe", Email: "john@example.com", Password: "invalid_base64"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateRegistration(tt.req))
		})
	}
}

func TestIsUUID(t *testing.T) {
	id := uuid.New()

	ok, got := IsUUID(id.String())
	assert.True(t, ok)
	assert.Equal(t, id, got)

	ok, _ = IsUUID("not-a-uuid")
	assert.False(t, ok)
}
