// Package catalog holds the project showcase domain: projects, the
// comments attached to them and the user accounts. All state lives in a
// record store; this package owns the column mapping and decodes every
// record once at the store boundary so handlers only ever see well-formed
// entities.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/lbreton/showcase/store"
)

const (
	ProjectsTable = "Projects"
	CommentsTable = "Comments"
	UsersTable    = "Users"
)

const (
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
	StatusPaused     = "paused"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type (
	// Service exposes the catalog operations on top of a record store.
	Service struct {
		store store.Store
		now   func() time.Time
	}

	// Project is one showcased student project.
	Project struct {
		ProjectID    string   `json:"projectID"`
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Technologies []string `json:"technologies"`
		ProjectLink  string   `json:"projectLink,omitempty"`
		SourceLink   string   `json:"sourceLink,omitempty"`
		DemoLink     string   `json:"demoLink,omitempty"`
		Images       []string `json:"images"`
		Thumbnail    string   `json:"thumbnail,omitempty"`
		Cohort       string   `json:"cohort"`
		Students     []string `json:"students"`
		Category     string   `json:"category"`
		Tags         []string `json:"tags"`
		Status       string   `json:"status"`
		Difficulty   string   `json:"difficulty"`
		StartDate    string   `json:"startDate"`
		EndDate      string   `json:"endDate,omitempty"`
		Mentor       string   `json:"mentor,omitempty"`
		Achievements string   `json:"achievements,omitempty"`
		Author       string   `json:"author"`
		Hidden       bool     `json:"isHidden"`
		Likes        int      `json:"likes"`
	}

	// ProjectInput is the payload accepted when creating a project.
	ProjectInput struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Technologies []string `json:"technologies"`
		ProjectLink  string   `json:"projectLink"`
		SourceLink   string   `json:"sourceLink"`
		DemoLink     string   `json:"demoLink"`
		Images       []string `json:"images"`
		Thumbnail    string   `json:"thumbnail"`
		Cohort       string   `json:"cohort"`
		Students     []string `json:"students"`
		Category     string   `json:"category"`
		Tags         []string `json:"tags"`
		Status       string   `json:"status"`
		Difficulty   string   `json:"difficulty"`
		StartDate    string   `json:"startDate"`
		EndDate      string   `json:"endDate"`
		Mentor       string   `json:"mentor"`
		Achievements string   `json:"achievements"`
		Hidden       bool     `json:"isHidden"`
	}

	// ProjectPatch is a partial update; nil fields are left untouched.
	ProjectPatch struct {
		Name         *string   `json:"name"`
		Description  *string   `json:"description"`
		Technologies *[]string `json:"technologies"`
		ProjectLink  *string   `json:"projectLink"`
		SourceLink   *string   `json:"sourceLink"`
		DemoLink     *string   `json:"demoLink"`
		Images       *[]string `json:"images"`
		Thumbnail    *string   `json:"thumbnail"`
		Cohort       *string   `json:"cohort"`
		Students     *[]string `json:"students"`
		Category     *string   `json:"category"`
		Tags         *[]string `json:"tags"`
		Status       *string   `json:"status"`
		Difficulty   *string   `json:"difficulty"`
		StartDate    *string   `json:"startDate"`
		EndDate      *string   `json:"endDate"`
		Mentor       *string   `json:"mentor"`
		Achievements *string   `json:"achievements"`
		Hidden       *bool     `json:"isHidden"`
	}

	// Stats aggregates the visible projects.
	Stats struct {
		TotalProjects int            `json:"totalProjects"`
		TotalLikes    int            `json:"totalLikes"`
		Categories    map[string]int `json:"categories"`
	}
)

func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Categories lists the categories offered by the project form.
func Categories() []string {
	return []string{"Web", "Mobile", "Desktop", "API", "Other"}
}

// Statuses lists the valid project statuses.
func Statuses() []string {
	return []string{StatusInProgress, StatusCompleted, StatusPaused}
}

// Difficulties lists the valid project difficulties.
func Difficulties() []string {
	return []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// ListVisible returns every project whose hidden flag is unset.
func (s *Service) ListVisible(ctx context.Context) ([]Project, error) {
	records, err := s.store.Select(ctx, ProjectsTable, store.IsFalse{Field: "isHidden"})
	if err != nil {
		return nil, fmt.Errorf("catalog: unable to list projects, cause %w", err)
	}
	return decodeProjects(records)
}

func (s *Service) Project(ctx context.Context, id string) (Project, error) {
	rec, err := s.store.Find(ctx, ProjectsTable, id)
	if err != nil {
		return Project{}, err
	}
	return decodeProject(rec)
}

// CreateProject validates the input and stores a new project authored by
// the given user. Missing required fields are reported all at once.
func (s *Service) CreateProject(ctx context.Context, author string, in ProjectInput) (Project, error) {
	if err := in.validate(); err != nil {
		return Project{}, err
	}
	if in.Status == "" {
		in.Status = StatusInProgress
	}
	if in.Difficulty == "" {
		in.Difficulty = DifficultyIntermediate
	}
	if in.StartDate == "" {
		in.StartDate = s.now().UTC().Format(time.RFC3339)
	}
	fields := encodeProjectInput(in)
	fields["author"] = author
	fields["likes"] = 0
	rec, err := s.store.Create(ctx, ProjectsTable, fields)
	if err != nil {
		return Project{}, fmt.Errorf("catalog: unable to create project, cause %w", err)
	}
	return decodeProject(rec)
}

// UpdateProject applies a partial update; only fields present in the
// patch are written back.
func (s *Service) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (Project, error) {
	if err := patch.validate(); err != nil {
		return Project{}, err
	}
	fields := encodeProjectPatch(patch)
	rec, err := s.store.Update(ctx, ProjectsTable, id, fields)
	if err != nil {
		return Project{}, err
	}
	return decodeProject(rec)
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	// comments referencing the project are left in place on purpose,
	// the store has no cascade and neither do we
	return s.store.Delete(ctx, ProjectsTable, id)
}

// Like increments the like counter and returns the new count. This is a
// read-modify-write against the store with no reservation: two concurrent
// likes on the same project can land on the same base count and one of
// them is lost. The store offers no atomic increment, so the race stands.
func (s *Service) Like(ctx context.Context, id string) (int, error) {
	project, err := s.Project(ctx, id)
	if err != nil {
		return 0, err
	}
	likes := project.Likes + 1
	_, err = s.store.Update(ctx, ProjectsTable, id, store.Fields{"likes": likes})
	if err != nil {
		return 0, fmt.Errorf("catalog: unable to record like for project %v, cause %w", id, err)
	}
	return likes, nil
}

// SearchProjects matches the query as a case-sensitive substring against
// name, description, technologies, category and tags; any single hit
// qualifies the project.
func (s *Service) SearchProjects(ctx context.Context, query string) ([]Project, error) {
	filter := store.AnyContains{
		Fields: []string{"name", "description", "technologies", "category", "tags"},
		Needle: query,
	}
	records, err := s.store.Select(ctx, ProjectsTable, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog: unable to search projects, cause %w", err)
	}
	return decodeProjects(records)
}

// Statistics reduces the visible projects to totals and a per-category
// count.
func (s *Service) Statistics(ctx context.Context) (Stats, error) {
	projects, err := s.ListVisible(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		TotalProjects: len(projects),
		Categories:    map[string]int{},
	}
	for _, p := range projects {
		stats.TotalLikes += p.Likes
		stats.Categories[p.Category]++
	}
	return stats, nil
}

func (in ProjectInput) validate() error {
	var verr ValidationError
	required := []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"description", in.Description},
		{"category", in.Category},
		{"cohort", in.Cohort},
	}
	for _, field := range required {
		if field.value == "" {
			verr.Missing = append(verr.Missing, field.name)
		}
	}
	if in.Status != "" && !oneOf(in.Status, Statuses()) {
		verr.Invalid = append(verr.Invalid, "status")
	}
	if in.Difficulty != "" && !oneOf(in.Difficulty, Difficulties()) {
		verr.Invalid = append(verr.Invalid, "difficulty")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func (p ProjectPatch) validate() error {
	var verr ValidationError
	if p.Status != nil && !oneOf(*p.Status, Statuses()) {
		verr.Invalid = append(verr.Invalid, "status")
	}
	if p.Difficulty != nil && !oneOf(*p.Difficulty, Difficulties()) {
		verr.Invalid = append(verr.Invalid, "difficulty")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func oneOf(v string, valid []string) bool {
	for _, candidate := range valid {
		if v == candidate {
			return true
		}
	}
	return false
}
