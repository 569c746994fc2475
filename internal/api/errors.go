package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQuery is returned by Search for a blank query; callers fall back
// to paging the catalog instead.
var ErrEmptyQuery = errors.New("empty search query")

// genericNetworkMessage is shown when the server gave no usable message
const genericNetworkMessage = "Network error, please try again."

// NetworkError indicates a transport failure or a non-2xx response
type NetworkError struct {
	Op         string
	StatusCode int    // 0 for transport failures
	Message    string // server-provided message, if any
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		if e.Message != "" {
			return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage returns the raw server message when available, else a generic text
func (e *NetworkError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return genericNetworkMessage
}

// NotFoundError indicates an identifier absent from the catalog listing
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content not found: %s", e.ID)
}

// LoadError indicates the listing needed to resolve an identifier could not be fetched
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load content %s: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FieldError describes one invalid field of a submission
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError indicates a malformed report submission
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UserMessage returns the first field message, suitable for inline display
func (e *ValidationError) UserMessage() string {
	if len(e.Fields) == 0 {
		return "Invalid input"
	}
	return e.Fields[0].Message
}

// UserMessage converts any error from this package into text fit for display
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.UserMessage()
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.UserMessage()
	}
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return "Content not found"
	}
	return genericNetworkMessage
}
