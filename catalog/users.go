package catalog

import (
	"context"
	"fmt"

	"github.com/lbreton/showcase/store"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type (
	// User is an account record. The password hash never leaves the
	// process as JSON.
	User struct {
		UserID       string `json:"userID"`
		Username     string `json:"username"`
		PasswordHash string `json:"-"`
		Role         string `json:"role"`
	}
)

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (s *Service) User(ctx context.Context, id string) (User, error) {
	rec, err := s.store.Find(ctx, UsersTable, id)
	if err != nil {
		return User{}, err
	}
	return decodeUser(rec)
}

// UserByUsername looks an account up by its unique username. The found
// flag distinguishes "no such user" from a store failure.
func (s *Service) UserByUsername(ctx context.Context, username string) (User, bool, error) {
	records, err := s.store.Select(ctx, UsersTable, store.Eq{Field: "username", Value: username})
	if err != nil {
		return User{}, false, fmt.Errorf("catalog: unable to look up user %v, cause %w", username, err)
	}
	if len(records) == 0 {
		return User{}, false, nil
	}
	u, err := decodeUser(records[0])
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *Service) AllUsers(ctx context.Context) ([]User, error) {
	records, err := s.store.Select(ctx, UsersTable, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: unable to list users, cause %w", err)
	}
	out := make([]User, 0, len(records))
	for _, rec := range records {
		u, err := decodeUser(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *Service) CreateUser(ctx context.Context, username, passwordHash, role string) (User, error) {
	rec, err := s.store.Create(ctx, UsersTable, store.Fields{
		"username": username,
		"password": passwordHash,
		"role":     role,
	})
	if err != nil {
		return User{}, fmt.Errorf("catalog: unable to create user %v, cause %w", username, err)
	}
	return decodeUser(rec)
}
