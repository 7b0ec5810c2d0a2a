package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokens stay valid this long after being issued; there is no refresh
// and no revocation, a leaked token lives until it expires
const tokenTTL = 24 * time.Hour

type (
	// Tokens issues and verifies the bearer tokens handed out at
	// login. Tokens are self-contained HS256 JWTs carrying the user id
	// as subject.
	Tokens struct {
		secret []byte
		now    func() time.Time
	}
)

func NewTokens(secret []byte) *Tokens {
	return &Tokens{secret: secret, now: time.Now}
}

// Issue signs a token for the given user id, valid for 24 hours.
func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: unable to sign token, cause %w", err)
	}
	return token, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Any malformed, tampered or expired token comes back as
// ErrTokenInvalid.
func (t *Tokens) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
