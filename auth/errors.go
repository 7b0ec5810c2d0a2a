package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenMissing means the request carried no bearer token at all.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenInvalid covers tampered signatures, expired tokens and
	// anything else that fails verification.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrInvalidCredentials is returned by Login for an unknown
	// username or a wrong password; callers must not tell the two
	// apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	// DuplicateUsername rejects a registration for a name that is
	// already taken.
	DuplicateUsername struct {
		Username string
	}
)

func (d DuplicateUsername) Error() string {
	return fmt.Sprintf("username %v is already taken", d.Username)
}
