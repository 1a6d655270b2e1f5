package model

import "time"

// User represents a user in the database. The password hash never leaves
// the repository and service layers.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}

// PublicUser is the projection of a user that is safe for API responses
// and session payloads.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// Public returns the API-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Verified: u.Verified,
	}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}
