package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lbreton/showcase/store"
)

// fakeBase is a minimal in-memory rendition of the Airtable record API,
// enough to exercise the client's request and response mapping.
type fakeBase struct {
	records map[string]store.Fields
	order   []string
	// captured by the last Select
	lastFormula string
	pageSize    int
}

func newFakeBase() *fakeBase {
	return &fakeBase{records: map[string]store.Fields{}, pageSize: 100}
}

func (f *fakeBase) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key-123" {
			http.Error(w, `{"error":{"type":"AUTHENTICATION_REQUIRED"}}`, http.StatusUnauthorized)
			return
		}
		trimmed := strings.TrimPrefix(r.URL.Path, "/v0/base-1/Projects")
		id := strings.TrimPrefix(trimmed, "/")
		switch {
		case r.Method == http.MethodGet && id == "":
			f.list(w, r)
		case r.Method == http.MethodGet:
			f.find(w, id)
		case r.Method == http.MethodPost:
			f.create(w, r)
		case r.Method == http.MethodPatch:
			f.update(w, r, id)
		case r.Method == http.MethodDelete:
			f.remove(w, id)
		default:
			http.Error(w, "unexpected request", http.StatusBadRequest)
		}
	})
}

func (f *fakeBase) list(w http.ResponseWriter, r *http.Request) {
	f.lastFormula = r.URL.Query().Get("filterByFormula")
	start := 0
	if offset := r.URL.Query().Get("offset"); offset != "" {
		for i, id := range f.order {
			if id == offset {
				start = i
			}
		}
	}
	var page struct {
		Records []map[string]any `json:"records"`
		Offset  string           `json:"offset,omitempty"`
	}
	end := start + f.pageSize
	if end > len(f.order) {
		end = len(f.order)
	}
	for _, id := range f.order[start:end] {
		page.Records = append(page.Records, map[string]any{"id": id, "fields": f.records[id]})
	}
	if end < len(f.order) {
		page.Offset = f.order[end]
	}
	json.NewEncoder(w).Encode(page)
}

func (f *fakeBase) find(w http.ResponseWriter, id string) {
	fields, ok := f.records[id]
	if !ok {
		http.Error(w, `{"error":{"type":"MODEL_ID_NOT_FOUND"}}`, http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"id": id, "fields": fields})
}

func (f *fakeBase) create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Fields store.Fields `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	id := "rec" + string(rune('A'+len(f.order)))
	f.records[id] = body.Fields
	f.order = append(f.order, id)
	json.NewEncoder(w).Encode(map[string]any{"id": id, "fields": body.Fields})
}

func (f *fakeBase) update(w http.ResponseWriter, r *http.Request, id string) {
	fields, ok := f.records[id]
	if !ok {
		http.Error(w, `{"error":{"type":"MODEL_ID_NOT_FOUND"}}`, http.StatusNotFound)
		return
	}
	var body struct {
		Fields store.Fields `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	for k, v := range body.Fields {
		fields[k] = v
	}
	json.NewEncoder(w).Encode(map[string]any{"id": id, "fields": fields})
}

func (f *fakeBase) remove(w http.ResponseWriter, id string) {
	if _, ok := f.records[id]; !ok {
		http.Error(w, `{"error":{"type":"MODEL_ID_NOT_FOUND"}}`, http.StatusNotFound)
		return
	}
	delete(f.records, id)
	for i, known := range f.order {
		if known == id {
			f.order = append(f.order[:i:i], f.order[i+1:]...)
			break
		}
	}
	json.NewEncoder(w).Encode(map[string]any{"deleted": true, "id": id})
}

func testClient(t *testing.T) (*Client, *fakeBase) {
	fake := newFakeBase()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return NewWithEndpoint(srv.URL, "base-1", "key-123"), fake
}

func TestCreateFindUpdateDelete(t *testing.T) {
	ctx := context.Background()
	client, _ := testClient(t)

	created, err := client.Create(ctx, "Projects", store.Fields{"name": "demo", "likes": float64(0)})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := client.Find(ctx, "Projects", created.ID)
	require.NoError(t, err)
	name, err := found.Fields.String("Projects", "name")
	require.NoError(t, err)
	require.Equal(t, "demo", name)

	updated, err := client.Update(ctx, "Projects", created.ID, store.Fields{"likes": 3})
	require.NoError(t, err)
	likes, err := updated.Fields.Int("Projects", "likes")
	require.NoError(t, err)
	require.Equal(t, 3, likes)

	require.NoError(t, client.Delete(ctx, "Projects", created.ID))
	_, err = client.Find(ctx, "Projects", created.ID)
	var notFound store.RecordNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, created.ID, notFound.ID)
}

func TestSelectSendsRenderedFormula(t *testing.T) {
	ctx := context.Background()
	client, fake := testClient(t)
	_, err := client.Create(ctx, "Projects", store.Fields{"name": "demo"})
	require.NoError(t, err)

	_, err = client.Select(ctx, "Projects", store.IsFalse{Field: "isHidden"})
	require.NoError(t, err)
	require.Equal(t, `{isHidden} = FALSE()`, fake.lastFormula)
}

func TestSelectFollowsPagination(t *testing.T) {
	ctx := context.Background()
	client, fake := testClient(t)
	fake.pageSize = 2
	for i := 0; i < 5; i++ {
		_, err := client.Create(ctx, "Projects", store.Fields{"name": "demo"})
		require.NoError(t, err)
	}

	records, err := client.Select(ctx, "Projects", nil)
	require.NoError(t, err)
	require.Len(t, records, 5)
}
