package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id,
			username,
			password,
			created_at,
			updated_at
		) VALUES (
			:id,
			:username,
			:password,
			:created_at,
			:updated_at
		)
	`

	queryGetUserByID = `
		SELECT
			id,
			username,
			password,
			created_at,
			updated_at
		FROM users
		WHERE id = :id
	`

	queryGetUserByUsername = `
		SELECT
			id,
			username,
			password,
			created_at,
			updated_at
		FROM users
		WHERE username = :username
	`

	queryExistsUserByID = `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = :id)
	`
)
