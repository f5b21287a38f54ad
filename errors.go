package envscope

import (
	"strings"
)

// ErrorCode defines string error
type ErrorCode string

// Error returns error message
func (e ErrorCode) Error() string {
	return string(e)
}

const (
	// ErrMissingKey indicates that none of the candidate key names are bound in the source.
	ErrMissingKey = ErrorCode("no candidate key is set")
)

// MissingKeyError reports a failed resolution together with every candidate
// key name that was searched, in priority order.
type MissingKeyError struct {
	// Key is the logical key that was requested.
	Key string
	// Tried holds the candidate names, most specific first.
	Tried []string
}

func (e *MissingKeyError) Error() string {
	sb := new(strings.Builder)
	sb.WriteString("missing required configuration: tried ")
	sb.WriteString(strings.Join(e.Tried, " or "))
	return sb.String()
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingKey
}
