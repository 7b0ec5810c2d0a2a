package store

import "strings"

type (
	// Filter selects records from a table. A nil Filter matches every
	// record. Filters are structured values rather than formula strings
	// so that user input never gets concatenated into a query expression;
	// each backend renders or evaluates the filter itself.
	Filter interface {
		// Match evaluates the filter against decoded record fields.
		// Backends without a server-side query language (and test
		// fakes) filter with it after fetching.
		Match(f Fields) bool
	}

	// Eq matches records whose column equals the given text exactly.
	Eq struct {
		Field string
		Value string
	}

	// IsFalse matches records whose checkbox column is unset or false.
	IsFalse struct {
		Field string
	}

	// AnyContains matches records where at least one of the listed
	// columns contains the needle as a case-sensitive substring.
	// Multi-valued columns match when any element contains the needle.
	AnyContains struct {
		Fields []string
		Needle string
	}
)

func (e Eq) Match(f Fields) bool {
	v, ok := f[e.Field]
	if !ok || v == nil {
		return e.Value == ""
	}
	s, ok := v.(string)
	return ok && s == e.Value
}

func (i IsFalse) Match(f Fields) bool {
	v, ok := f[i.Field]
	if !ok || v == nil {
		return true
	}
	b, ok := v.(bool)
	return ok && !b
}

func (a AnyContains) Match(f Fields) bool {
	for _, field := range a.Fields {
		switch v := f[field].(type) {
		case string:
			if strings.Contains(v, a.Needle) {
				return true
			}
		case []string:
			for _, s := range v {
				if strings.Contains(s, a.Needle) {
					return true
				}
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.Contains(s, a.Needle) {
					return true
				}
			}
		}
	}
	return false
}
