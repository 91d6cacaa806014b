package model

import "time"

// User is an originating user reference carried by artifacts. Opaque to the
// evaluation pipeline; populated by the bulk importer.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Brand is an originating brand reference carried by artifacts.
type Brand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Style       string `json:"style"`
	Vision      string `json:"vision"`
	Voice       string `json:"voice"`
	Colors      string `json:"colors"`
}

// Admin is a dashboard operator account used for API authentication.
type Admin struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
}

// NewAdmin creates an admin account with the given bcrypt hash.
func NewAdmin(id, email, passwordHash string) Admin {
	return Admin{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
