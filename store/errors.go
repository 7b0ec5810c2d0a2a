package store

import "fmt"

type (
	// RecordNotFound reports a lookup for an id the backend does not
	// know about.
	RecordNotFound struct {
		Table string
		ID    string
	}

	// DecodeError reports a column whose stored value does not match
	// the type the caller expects.
	DecodeError struct {
		Table string
		Field string
		Want  string
	}

	// RequestFailed reports a backend call that came back with an
	// unexpected status.
	RequestFailed struct {
		Table  string
		Status int
		Body   string
	}
)

func (r RecordNotFound) Error() string {
	return fmt.Sprintf("record %v not found in table %v", r.ID, r.Table)
}

func (d DecodeError) Error() string {
	return fmt.Sprintf("table %v: field %v is not a valid %v", d.Table, d.Field, d.Want)
}

func (r RequestFailed) Error() string {
	return fmt.Sprintf("table %v: store call failed with status %v: %v", r.Table, r.Status, r.Body)
}
