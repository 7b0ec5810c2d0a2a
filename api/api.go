// Package api exposes the catalog over HTTP as a JSON API. Handlers are
// thin: decode the request, make one catalog call, shape the response.
// Status mapping for failures lives in respond.go, identity and
// authorization in realm.go.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lbreton/showcase/auth"
	"github.com/lbreton/showcase/catalog"
	"github.com/lbreton/showcase/internal/logutil"
)

type (
	handlers struct {
		svc   *catalog.Service
		realm *Realm
		auth  *auth.Tokens
	}
)

// AsHandler wires every route of the service into a single handler.
func AsHandler(svc *catalog.Service, tokens *auth.Tokens) http.Handler {
	h := &handlers{
		svc:   svc,
		realm: NewRealm(svc, tokens),
		auth:  tokens,
	}
	router := chi.NewRouter()
	router.Use(recoverer)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.listProjects)
			r.Get("/search/{query}", h.searchProjects)
			r.Get("/stats/all", h.projectStats)
			r.With(h.realm.Authenticate).Get("/new", h.projectForm)
			r.With(h.realm.Authenticate).Post("/", h.createProject)
			r.Get("/{id}", h.getProject)
			r.With(h.realm.Authenticate).Post("/{id}/like", h.likeProject)
			r.With(h.realm.Authenticate, h.realm.RequireOwner(h.projectAuthor)).Put("/{id}", h.updateProject)
			r.With(h.realm.Authenticate, h.realm.RequireOwner(h.projectAuthor)).Delete("/{id}", h.deleteProject)
		})
		r.Route("/comments", func(r chi.Router) {
			r.Get("/project/{projectID}", h.listComments)
			r.With(h.realm.Authenticate).Post("/", h.addComment)
			r.With(h.realm.Authenticate, h.realm.RequireOwner(h.commentAuthor)).Put("/{id}", h.updateComment)
			r.With(h.realm.Authenticate, h.realm.RequireOwner(h.commentAuthor)).Delete("/{id}", h.deleteComment)
		})
	})
	return router
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log := logutil.GetOrDefault(r.Context())
				log.Error().Any("panic", v).Msg("handler panicked")
				writeJSON(w, http.StatusInternalServerError, errorBody{
					Error:   "internal error",
					Message: "unexpected failure while serving the request",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
