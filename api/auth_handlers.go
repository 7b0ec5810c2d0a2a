package api

import (
	"net/http"

	"github.com/lbreton/showcase/auth"
)

type (
	credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	registeredBody struct {
		UserID   string `json:"userID"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}

	loginBody struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
)

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeBody(r, &creds); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	user, err := auth.Register(r.Context(), h.svc, creds.Username, creds.Password)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registeredBody{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeBody(r, &creds); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	token, user, err := auth.Login(r.Context(), h.svc, h.auth, creds.Username, creds.Password)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginBody{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	})
}
