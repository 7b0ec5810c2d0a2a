package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lbreton/showcase/auth"
	"github.com/lbreton/showcase/catalog"
	"github.com/lbreton/showcase/internal/logutil"
	"github.com/lbreton/showcase/store"
)

type (
	errorBody struct {
		Error   string `json:"error"`
		Message string `json:"message,omitempty"`
	}
)

var (
	errUserNotFound = errors.New("user not found")
	errNotOwner     = errors.New("not the author of this resource")
	errNotAdmin     = errors.New("admin role required")
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError logs the failure and translates it to the HTTP status the
// caller expects. Anything without a mapping is an upstream or internal
// problem and surfaces as a generic 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := classify(err)
	log := logutil.GetOrDefault(ctx)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("http.status", status).Msg("request rejected")
	}
	writeJSON(w, status, body)
}

func classify(err error) (int, errorBody) {
	var verr catalog.ValidationError
	var dup auth.DuplicateUsername
	var notFound store.RecordNotFound
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorBody{Error: verr.Error()}
	case errors.Is(err, auth.ErrTokenMissing):
		return http.StatusUnauthorized, errorBody{Error: "token missing"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{Error: "invalid credentials"}
	case errors.Is(err, errUserNotFound):
		return http.StatusUnauthorized, errorBody{Error: "user not found"}
	case errors.Is(err, auth.ErrTokenInvalid):
		return http.StatusForbidden, errorBody{Error: "invalid token"}
	case errors.Is(err, errNotOwner), errors.Is(err, errNotAdmin):
		return http.StatusForbidden, errorBody{Error: err.Error()}
	case errors.As(err, &notFound):
		return http.StatusNotFound, errorBody{Error: notFound.Error()}
	case errors.As(err, &dup):
		return http.StatusConflict, errorBody{Error: dup.Error()}
	}
	return http.StatusInternalServerError, errorBody{
		Error:   "internal error",
		Message: err.Error(),
	}
}

func decodeBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return catalog.ValidationError{Invalid: []string{"body"}}
	}
	return nil
}
