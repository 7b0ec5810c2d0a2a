package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lbreton/showcase/catalog"
)

func (h *handlers) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListVisible(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *handlers) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.Project(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// projectForm hands the creation form its enumerations plus the caller's
// identity.
func (h *handlers) projectForm(w http.ResponseWriter, r *http.Request) {
	user, _ := identityFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"user":         user,
		"categories":   catalog.Categories(),
		"difficulties": catalog.Difficulties(),
		"statuses":     catalog.Statuses(),
	})
}

func (h *handlers) createProject(w http.ResponseWriter, r *http.Request) {
	user, _ := identityFrom(r.Context())
	var input catalog.ProjectInput
	if err := decodeBody(r, &input); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	project, err := h.svc.CreateProject(r.Context(), user.Username, input)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *handlers) updateProject(w http.ResponseWriter, r *http.Request) {
	var patch catalog.ProjectPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	project, err := h.svc.UpdateProject(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *handlers) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

func (h *handlers) likeProject(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.Like(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"likes": likes})
}

func (h *handlers) searchProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.SearchProjects(r.Context(), chi.URLParam(r, "query"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *handlers) projectStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handlers) projectAuthor(ctx context.Context, id string) (string, error) {
	project, err := h.svc.Project(ctx, id)
	if err != nil {
		return "", err
	}
	return project.Author, nil
}
