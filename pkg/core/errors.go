package core

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Common errors.
var (
	ErrNotFound = errors.New("record not found")
	ErrEmptyID  = errors.New("record ID cannot be empty")
	ErrReadOnly = errors.New("gateway is in read-only mode")
)

// StatusError is returned by gateways when the remote API answers with a
// non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap maps 404 responses to ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// ValidationError carries per-field messages for a rejected Form.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Details[k])
	}
	return "invalid record: " + strings.Join(parts, "; ")
}
