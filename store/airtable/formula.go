package airtable

import (
	"fmt"
	"strings"

	"github.com/lbreton/showcase/store"
)

// renderFormula turns a structured filter into an Airtable
// filterByFormula expression. Text values are escaped before they are
// placed inside a string literal, so user input can never terminate the
// literal and smuggle formula syntax into the query. Filters the mini
// language cannot express report ok=false and are evaluated client-side
// by the caller.
func renderFormula(f store.Filter) (formula string, ok bool) {
	switch f := f.(type) {
	case nil:
		return "", true
	case store.Eq:
		return fmt.Sprintf("{%v} = '%v'", f.Field, escapeText(f.Value)), true
	case store.IsFalse:
		return fmt.Sprintf("{%v} = FALSE()", f.Field), true
	case store.AnyContains:
		if len(f.Fields) == 0 {
			return "", false
		}
		terms := make([]string, 0, len(f.Fields))
		for _, field := range f.Fields {
			terms = append(terms, fmt.Sprintf("FIND('%v', {%v}) > 0", escapeText(f.Needle), field))
		}
		if len(terms) == 1 {
			return terms[0], true
		}
		return fmt.Sprintf("OR(%v)", strings.Join(terms, ", ")), true
	}
	return "", false
}

var textEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
