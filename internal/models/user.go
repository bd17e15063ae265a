package models

import "time"

// User represents a row in the PostgreSQL users table. Password holds the
// bcrypt hash, never the plaintext. Token and TokenExpiration are nil until
// the user requests a bearer token.
type User struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	Password        string     `json:"-"` // never serialize
	DateCreated     time.Time  `json:"dateCreated"`
	Token           *string    `json:"-"` // never serialize
	TokenExpiration *time.Time `json:"-"`
}

// PublicUser is the externally visible shape of a user.
type PublicUser struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Username    string    `json:"username"`
	DateCreated time.Time `json:"dateCreated"`
}

// Public strips credential fields and email for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		DateCreated: u.DateCreated,
	}
}

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateUserRequest is the JSON body for PUT /users/{id}. Only these fields
// may change; anything else in the body is ignored. Nil means "not provided".
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}
