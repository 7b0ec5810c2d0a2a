// Package store abstracts the tabular record store that holds the
// Projects, Comments and Users tables. The production backend talks to a
// remote Airtable base (store/airtable), development setups can run
// against a local sqlite file (store/localdb). Records are schemaless on
// the wire; callers decode fields through the typed accessors so that
// badly-typed columns surface as a DecodeError instead of leaking
// half-decoded data into handlers.
package store

import "context"

type (
	// Fields holds the column values of a single record, keyed by
	// column name. Values are whatever the backend's JSON decoder
	// produced.
	Fields map[string]any

	// Record is one row of a table, identified by an opaque id assigned
	// by the backend.
	Record struct {
		ID     string
		Fields Fields
	}

	// Store is the minimal record-store contract the rest of the
	// system depends on.
	Store interface {
		Create(ctx context.Context, table string, fields Fields) (Record, error)
		Find(ctx context.Context, table, id string) (Record, error)
		Update(ctx context.Context, table, id string, fields Fields) (Record, error)
		Delete(ctx context.Context, table, id string) error
		Select(ctx context.Context, table string, filter Filter) ([]Record, error)
	}
)

// String reads a text column, defaulting to empty when the column is
// absent or null.
func (f Fields) String(table, key string) (string, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", DecodeError{Table: table, Field: key, Want: "string"}
	}
	return s, nil
}

// StringList reads a multi-valued text column. Both native lists and a
// single bare string are accepted, absent columns decode to nil.
func (f Fields) StringList(table, key string) ([]string, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch vs := v.(type) {
	case []string:
		return vs, nil
	case string:
		return []string{vs}, nil
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			s, ok := item.(string)
			if !ok {
				return nil, DecodeError{Table: table, Field: key, Want: "list of strings"}
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, DecodeError{Table: table, Field: key, Want: "list of strings"}
}

// Bool reads a checkbox column, defaulting to false when absent.
func (f Fields) Bool(table, key string) (bool, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, DecodeError{Table: table, Field: key, Want: "bool"}
	}
	return b, nil
}

// Int reads a numeric column, defaulting to zero when absent. JSON
// decoders hand numbers over as float64, so both forms are accepted.
func (f Fields) Int(table, key string) (int, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, DecodeError{Table: table, Field: key, Want: "number"}
}
