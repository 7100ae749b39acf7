package profile

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound is returned when the profile source has no record for a username
var ErrProfileNotFound = errors.New("profile not found")

// FetchError represents a failure retrieving one profile from the profile source
type FetchError struct {
	Username string
	Message  string
	Cause    error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile fetch error for %s: %s: %v", e.Username, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile fetch error for %s: %s", e.Username, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
