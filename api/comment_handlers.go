package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lbreton/showcase/catalog"
)

type (
	commentInput struct {
		ProjectID string `json:"projectId"`
		Content   string `json:"content"`
		Author    string `json:"author"`
	}
)

func (h *handlers) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.CommentsFor(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *handlers) addComment(w http.ResponseWriter, r *http.Request) {
	var input commentInput
	if err := decodeBody(r, &input); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if input.Author == "" {
		// callers may omit the author, the authenticated user signs it
		user, _ := identityFrom(r.Context())
		input.Author = user.Username
	}
	comment, err := h.svc.AddComment(r.Context(), input.ProjectID, input.Content, input.Author)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *handlers) updateComment(w http.ResponseWriter, r *http.Request) {
	var patch catalog.CommentPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	comment, err := h.svc.UpdateComment(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *handlers) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteComment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func (h *handlers) commentAuthor(ctx context.Context, id string) (string, error) {
	comment, err := h.svc.Comment(ctx, id)
	if err != nil {
		return "", err
	}
	return comment.Author, nil
}
