package user

import (
	"user-registry-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		FullName: uDomain.FullName,
		Email:    uDomain.Email,
	}
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}
