package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/lbreton/showcase/store"
)

type (
	// Comment is a remark left on a project. Comments reference their
	// project by id only; deleting a project orphans them.
	Comment struct {
		CommentID string `json:"commentID"`
		ProjectID string `json:"projectID"`
		Content   string `json:"content"`
		Author    string `json:"author"`
		CreatedAt string `json:"createdAt"`
	}

	// CommentPatch is a partial comment update; nil fields stay as
	// they are.
	CommentPatch struct {
		ProjectID *string `json:"projectId"`
		Content   *string `json:"content"`
		Author    *string `json:"author"`
	}
)

// CommentsFor returns every comment attached to the given project, in
// store order.
func (s *Service) CommentsFor(ctx context.Context, projectID string) ([]Comment, error) {
	records, err := s.store.Select(ctx, CommentsTable, store.Eq{Field: "projectID", Value: projectID})
	if err != nil {
		return nil, fmt.Errorf("catalog: unable to list comments for project %v, cause %w", projectID, err)
	}
	out := make([]Comment, 0, len(records))
	for _, rec := range records {
		c, err := decodeComment(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// AddComment stores a new comment, stamping it with the current time.
func (s *Service) AddComment(ctx context.Context, projectID, content, author string) (Comment, error) {
	var verr ValidationError
	if projectID == "" {
		verr.Missing = append(verr.Missing, "projectId")
	}
	if content == "" {
		verr.Missing = append(verr.Missing, "content")
	}
	if !verr.Empty() {
		return Comment{}, verr
	}
	rec, err := s.store.Create(ctx, CommentsTable, store.Fields{
		"projectID": projectID,
		"content":   content,
		"author":    author,
		"createdAt": s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return Comment{}, fmt.Errorf("catalog: unable to add comment, cause %w", err)
	}
	return decodeComment(rec)
}

func (s *Service) Comment(ctx context.Context, id string) (Comment, error) {
	rec, err := s.store.Find(ctx, CommentsTable, id)
	if err != nil {
		return Comment{}, err
	}
	return decodeComment(rec)
}

func (s *Service) UpdateComment(ctx context.Context, id string, patch CommentPatch) (Comment, error) {
	fields := store.Fields{}
	if patch.ProjectID != nil {
		fields["projectID"] = *patch.ProjectID
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if patch.Author != nil {
		fields["author"] = *patch.Author
	}
	rec, err := s.store.Update(ctx, CommentsTable, id, fields)
	if err != nil {
		return Comment{}, err
	}
	return decodeComment(rec)
}

func (s *Service) DeleteComment(ctx context.Context, id string) error {
	return s.store.Delete(ctx, CommentsTable, id)
}
