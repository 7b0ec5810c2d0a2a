package airtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lbreton/showcase/store"
)

func TestRenderEq(t *testing.T) {
	formula, ok := renderFormula(store.Eq{Field: "username", Value: "alice"})
	require.True(t, ok)
	require.Equal(t, `{username} = 'alice'`, formula)
}

func TestRenderIsFalse(t *testing.T) {
	formula, ok := renderFormula(store.IsFalse{Field: "isHidden"})
	require.True(t, ok)
	require.Equal(t, `{isHidden} = FALSE()`, formula)
}

func TestRenderAnyContains(t *testing.T) {
	formula, ok := renderFormula(store.AnyContains{
		Fields: []string{"name", "tags"},
		Needle: "go",
	})
	require.True(t, ok)
	require.Equal(t, `OR(FIND('go', {name}) > 0, FIND('go', {tags}) > 0)`, formula)
}

func TestRenderNil(t *testing.T) {
	formula, ok := renderFormula(nil)
	require.True(t, ok)
	require.Empty(t, formula)
}

// user input must never be able to terminate the string literal it is
// embedded in
func TestRenderEscapesUserInput(t *testing.T) {
	formula, ok := renderFormula(store.Eq{Field: "username", Value: `a', {password}) > 0, FIND('`})
	require.True(t, ok)
	require.Equal(t, `{username} = 'a\', {password}) > 0, FIND(\''`, formula)

	formula, ok = renderFormula(store.AnyContains{Fields: []string{"name"}, Needle: `x\'`})
	require.True(t, ok)
	require.Equal(t, `FIND('x\\\'', {name}) > 0`, formula)
}
