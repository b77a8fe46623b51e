package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// User represents a registered account. Each user owns exactly one
// portfolio. Only the bcrypt hash of the password is ever stored.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

// Validate ensures the user adheres to domain rules.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("user email cannot be empty")
	}
	if u.PasswordHash == "" {
		return errors.New("user password hash cannot be empty")
	}
	return nil
}
