// Package auth covers credentials: password hashing, signed bearer
// tokens and the register/login flows. The signing secret is injected at
// startup and held immutably for the process lifetime.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// work factor 10, same cost the service has always paid
const hashCost = 10

// HashPassword derives a salted one-way hash of the password. The salt
// is random per call, so hashing the same password twice yields
// different hashes.
func HashPassword(password string) (string, error) {
	buf, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("auth: unable to hash password, cause %w", err)
	}
	return string(buf), nil
}

// VerifyPassword reports whether the password matches the stored hash. A
// mismatch is a clean false; only a malformed stored hash is an error.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("auth: unable to verify password, cause %w", err)
	}
	return true, nil
}
