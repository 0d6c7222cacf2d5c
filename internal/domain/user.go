package domain

import (
	"strings"
	"time"

	"github.com/MrSnakeDoc/marks/internal/errs"
)

// User owns bookmarks and collections. The credential material is opaque
// outside of the auth service.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Salt         []byte    `json:"-"`
	Created      time.Time `json:"created"`
}

// ValidateCredentials checks the registration input.
func ValidateCredentials(username, password string) error {
	verr := errs.NewValidationError()
	if strings.TrimSpace(username) == "" {
		verr.Add("username", "is required")
	}
	if password == "" {
		verr.Add("password", "is required")
	}
	return verr.OrNil()
}
