package user

const (
	SelectUsers = `
		SELECT id, full_name, email, state, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at, id
	`
	SelectUserByID = `
		SELECT id, full_name, email, state, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	InsertUser = `
		INSERT INTO users (id, full_name, email, state, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, full_name, email, state, password_hash, created_at, updated_at
	`
)
