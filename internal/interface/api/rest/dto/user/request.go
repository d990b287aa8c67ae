package user

// Request is the registration body. Password carries the Base64 encoded plaintext.
type Request struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
