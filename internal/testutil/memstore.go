package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lbreton/showcase/store"
)

type (
	// MemStore is an in-memory store.Store for tests. Records keep
	// their insertion order per table, ids are rec000, rec001, ...
	MemStore struct {
		mtx    sync.Mutex
		tables map[string][]store.Record
		nextID int
	}
)

func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string][]store.Record)}
}

// Seed inserts a record without going through Create, returning its id.
func (m *MemStore) Seed(table string, fields store.Fields) string {
	rec, _ := m.Create(context.Background(), table, fields)
	return rec.ID
}

// Count reports how many records a table holds.
func (m *MemStore) Count(table string) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.tables[table])
}

func (m *MemStore) Create(ctx context.Context, table string, fields store.Fields) (store.Record, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	rec := store.Record{
		ID:     fmt.Sprintf("rec%03d", m.nextID),
		Fields: cloneFields(fields),
	}
	m.nextID++
	m.tables[table] = append(m.tables[table], rec)
	return rec, nil
}

func (m *MemStore) Find(ctx context.Context, table, id string) (store.Record, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for _, rec := range m.tables[table] {
		if rec.ID == id {
			return store.Record{ID: rec.ID, Fields: cloneFields(rec.Fields)}, nil
		}
	}
	return store.Record{}, store.RecordNotFound{Table: table, ID: id}
}

func (m *MemStore) Update(ctx context.Context, table, id string, fields store.Fields) (store.Record, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for i, rec := range m.tables[table] {
		if rec.ID != id {
			continue
		}
		for k, v := range fields {
			rec.Fields[k] = v
		}
		m.tables[table][i] = rec
		return store.Record{ID: rec.ID, Fields: cloneFields(rec.Fields)}, nil
	}
	return store.Record{}, store.RecordNotFound{Table: table, ID: id}
}

func (m *MemStore) Delete(ctx context.Context, table, id string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	records := m.tables[table]
	for i, rec := range records {
		if rec.ID == id {
			m.tables[table] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return store.RecordNotFound{Table: table, ID: id}
}

func (m *MemStore) Select(ctx context.Context, table string, filter store.Filter) ([]store.Record, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	var out []store.Record
	for _, rec := range m.tables[table] {
		if filter != nil && !filter.Match(rec.Fields) {
			continue
		}
		out = append(out, store.Record{ID: rec.ID, Fields: cloneFields(rec.Fields)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneFields(fields store.Fields) store.Fields {
	out := make(store.Fields, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
