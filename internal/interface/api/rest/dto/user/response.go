package user

type (
	User struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	Users []User
)
