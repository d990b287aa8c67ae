package ports

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}
