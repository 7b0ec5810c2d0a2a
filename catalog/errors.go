package catalog

import (
	"fmt"
	"strings"
)

type (
	// ValidationError enumerates the request fields that were missing
	// or carried a value outside the accepted set.
	ValidationError struct {
		Missing []string
		Invalid []string
	}
)

func (v ValidationError) Empty() bool {
	return len(v.Missing) == 0 && len(v.Invalid) == 0
}

func (v ValidationError) Error() string {
	var parts []string
	if len(v.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required fields: %v", strings.Join(v.Missing, ", ")))
	}
	if len(v.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: %v", strings.Join(v.Invalid, ", ")))
	}
	return strings.Join(parts, "; ")
}
