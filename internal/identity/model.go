package identity

import (
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

// User represents a registered account holder.
type User struct {
	ID           uid.UID
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Currency     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterInput carries the fields accepted at registration. Password
// is the only plaintext secret and is never stored or logged.
type RegisterInput struct {
	Email       string
	Username    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Currency    string
	Password    string
}
