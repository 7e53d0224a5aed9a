package entity

import "time"

type User struct {
	ID        string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserLoginData is the principal carried by an access token.
type UserLoginData struct {
	ID       string
	Username string
}
