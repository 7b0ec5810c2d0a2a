package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lbreton/showcase/internal/testutil"
	"github.com/lbreton/showcase/store"
)

func testService() (*Service, *testutil.MemStore) {
	mem := testutil.NewMemStore()
	svc := NewService(mem)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, mem
}

func seedProject(mem *testutil.MemStore, fields store.Fields) string {
	return mem.Seed(ProjectsTable, fields)
}

func TestListVisibleSkipsHidden(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	seedProject(mem, store.Fields{"name": "one", "isHidden": false})
	seedProject(mem, store.Fields{"name": "two"})
	seedProject(mem, store.Fields{"name": "three", "isHidden": true})

	projects, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	for _, p := range projects {
		require.False(t, p.Hidden)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService()

	_, err := svc.CreateProject(ctx, "alice", ProjectInput{Name: "demo"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.ElementsMatch(t, []string{"description", "category", "cohort"}, verr.Missing)

	_, err = svc.CreateProject(ctx, "alice", ProjectInput{
		Name:        "demo",
		Description: "a demo",
		Category:    "Web",
		Cohort:      "2024",
		Status:      "abandoned",
	})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Invalid, "status")
}

func TestCreateProjectDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService()

	project, err := svc.CreateProject(ctx, "alice", ProjectInput{
		Name:        "demo",
		Description: "a demo",
		Category:    "Web",
		Cohort:      "2024",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", project.Author)
	require.Equal(t, StatusInProgress, project.Status)
	require.Equal(t, DifficultyIntermediate, project.Difficulty)
	require.Equal(t, "2024-03-01T12:00:00Z", project.StartDate)
	require.Zero(t, project.Likes)
}

func TestUpdateProjectPatchLeavesAbsentFieldsAlone(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	id := seedProject(mem, store.Fields{
		"name":        "demo",
		"description": "a demo",
		"category":    "Web",
		"cohort":      "2024",
	})

	name := "renamed"
	updated, err := svc.UpdateProject(ctx, id, ProjectPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Name)
	require.Equal(t, "a demo", updated.Description)
	require.Equal(t, "Web", updated.Category)
}

func TestLikeIncrements(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	id := seedProject(mem, store.Fields{"name": "demo", "likes": 5})

	likes, err := svc.Like(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 6, likes)

	likes, err = svc.Like(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 7, likes)
}

func TestSearchMatchesSingleTag(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	seedProject(mem, store.Fields{"name": "one", "tags": []string{"golang", "web"}})
	seedProject(mem, store.Fields{"name": "two", "tags": []string{"python"}})
	seedProject(mem, store.Fields{"name": "three"})

	projects, err := svc.SearchProjects(ctx, "golang")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "one", projects[0].Name)
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	seedProject(mem, store.Fields{"name": "a", "category": "Web", "likes": 2})
	seedProject(mem, store.Fields{"name": "b", "category": "Web", "likes": 1})
	seedProject(mem, store.Fields{"name": "c", "category": "API"})

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalProjects)
	require.Equal(t, 3, stats.TotalLikes)
	require.Equal(t, map[string]int{"Web": 2, "API": 1}, stats.Categories)
}

func TestDeleteProjectKeepsComments(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	id := seedProject(mem, store.Fields{"name": "demo"})
	_, err := svc.AddComment(ctx, id, "nice work", "bob")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, id))
	require.Equal(t, 1, mem.Count(CommentsTable), "comments are orphaned, not cascaded")

	comments, err := svc.CommentsFor(ctx, id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
}

func TestAddCommentValidatesAndStamps(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	id := seedProject(mem, store.Fields{"name": "demo"})

	_, err := svc.AddComment(ctx, "", "", "bob")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.ElementsMatch(t, []string{"projectId", "content"}, verr.Missing)

	comment, err := svc.AddComment(ctx, id, "nice work", "bob")
	require.NoError(t, err)
	require.Equal(t, "2024-03-01T12:00:00Z", comment.CreatedAt)
	require.Equal(t, "bob", comment.Author)
}

func TestDecodeRejectsBadColumn(t *testing.T) {
	ctx := context.Background()
	svc, mem := testService()
	id := seedProject(mem, store.Fields{"name": "demo", "likes": "many"})

	_, err := svc.Project(ctx, id)
	var derr store.DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "likes", derr.Field)
}
