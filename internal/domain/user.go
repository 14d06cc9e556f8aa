package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential pairs a registry user with its password. Passwords are stored in
// the clear: the account registry is demo-grade and never leaves the local
// state file. The password is not part of the public User entity.
type Credential struct {
	Password string `json:"password"`
	User     User   `json:"user"`
}
