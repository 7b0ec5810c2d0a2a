package api

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/lbreton/showcase/auth"
	"github.com/lbreton/showcase/catalog"
	"github.com/lbreton/showcase/store"
)

type (
	// Realm guards routes behind bearer tokens, resolving the token's
	// user id back to an account on every request. A token outlives
	// its account, so a lookup miss is treated as unauthenticated, not
	// as an invalid token.
	Realm struct {
		svc    *catalog.Service
		tokens *auth.Tokens
	}

	identityKeyType byte
)

var (
	bearerTokenRE = regexp.MustCompile(`^Bearer ([^\s]+)$`)

	identityKey = identityKeyType(1)
)

func NewRealm(svc *catalog.Service, tokens *auth.Tokens) *Realm {
	return &Realm{svc: svc, tokens: tokens}
}

// Authenticate resolves the caller's identity before letting the request
// through. Missing token is 401, failed verification 403, deleted
// account 401.
func (s *Realm) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.identify(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), user)))
	})
}

// RequireOwner builds an author-or-admin gate for mutation routes. The
// target's author is loaded through loadAuthor using the route's id
// parameter; admins pass regardless of authorship.
func (s *Realm) RequireOwner(loadAuthor func(ctx context.Context, id string) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := identityFrom(r.Context())
			if !ok {
				writeError(r.Context(), w, auth.ErrTokenMissing)
				return
			}
			if !user.IsAdmin() {
				author, err := loadAuthor(r.Context(), chi.URLParam(r, "id"))
				if err != nil {
					writeError(r.Context(), w, err)
					return
				}
				if author != user.Username {
					writeError(r.Context(), w, errNotOwner)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route on the admin role with no author exception.
func (s *Realm) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := identityFrom(r.Context())
		if !ok {
			writeError(r.Context(), w, auth.ErrTokenMissing)
			return
		}
		if !user.IsAdmin() {
			writeError(r.Context(), w, errNotAdmin)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Realm) identify(r *http.Request) (catalog.User, error) {
	groups := bearerTokenRE.FindStringSubmatch(r.Header.Get("Authorization"))
	if len(groups) == 0 {
		return catalog.User{}, auth.ErrTokenMissing
	}
	userID, err := s.tokens.Verify(groups[1])
	if err != nil {
		return catalog.User{}, err
	}
	user, err := s.svc.User(r.Context(), userID)
	var notFound store.RecordNotFound
	if errors.As(err, &notFound) {
		return catalog.User{}, errUserNotFound
	} else if err != nil {
		return catalog.User{}, err
	}
	return user, nil
}

func withIdentity(ctx context.Context, user catalog.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

func identityFrom(ctx context.Context) (catalog.User, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return catalog.User{}, false
	}
	return v.(catalog.User), true
}
