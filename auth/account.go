package auth

import (
	"context"
	"fmt"

	"github.com/lbreton/showcase/catalog"
)

// passwords shorter than this are rejected at registration
const minPasswordLen = 6

// Register creates a new account. The very first account in an empty
// store becomes the admin; everyone after that is a regular user. The
// uniqueness check and the create are two separate store calls, so two
// simultaneous registrations of the same name can still race; the store
// is the authority either way.
func Register(ctx context.Context, svc *catalog.Service, username, password string) (catalog.User, error) {
	var verr catalog.ValidationError
	if username == "" {
		verr.Missing = append(verr.Missing, "username")
	}
	if password == "" {
		verr.Missing = append(verr.Missing, "password")
	} else if len(password) < minPasswordLen {
		verr.Invalid = append(verr.Invalid, "password")
	}
	if !verr.Empty() {
		return catalog.User{}, verr
	}
	_, taken, err := svc.UserByUsername(ctx, username)
	if err != nil {
		return catalog.User{}, err
	}
	if taken {
		return catalog.User{}, DuplicateUsername{Username: username}
	}
	existing, err := svc.AllUsers(ctx)
	if err != nil {
		return catalog.User{}, err
	}
	role := catalog.RoleUser
	if len(existing) == 0 {
		role = catalog.RoleAdmin
	}
	hash, err := HashPassword(password)
	if err != nil {
		return catalog.User{}, err
	}
	user, err := svc.CreateUser(ctx, username, hash, role)
	if err != nil {
		return catalog.User{}, fmt.Errorf("auth: unable to register %v, cause %w", username, err)
	}
	return user, nil
}

// Login checks the credentials and issues a bearer token for the
// account.
func Login(ctx context.Context, svc *catalog.Service, tokens *Tokens, username, password string) (string, catalog.User, error) {
	user, found, err := svc.UserByUsername(ctx, username)
	if err != nil {
		return "", catalog.User{}, err
	}
	if !found {
		return "", catalog.User{}, ErrInvalidCredentials
	}
	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", catalog.User{}, err
	}
	if !ok {
		return "", catalog.User{}, ErrInvalidCredentials
	}
	token, err := tokens.Issue(user.UserID)
	if err != nil {
		return "", catalog.User{}, err
	}
	return token, user, nil
}
