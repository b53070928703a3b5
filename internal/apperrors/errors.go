package apperrors

import "fmt"

// ErrUpstreamUnavailable is returned when the upstream API cannot be reached.
type ErrUpstreamUnavailable struct {
	Err error
}

// Error implements the error interface.
func (e *ErrUpstreamUnavailable) Error() string {
	return fmt.Sprintf("upstream unavailable: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ErrUpstreamUnavailable) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamUnavailable) Is(target error) bool {
	_, ok := target.(*ErrUpstreamUnavailable)
	return ok
}

// ErrUpstreamStatus is returned when the upstream API answers with a non-2xx status.
type ErrUpstreamStatus struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ErrUpstreamStatus) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upstream request failed: status %d, body: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream request failed: status %d", e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamStatus) Is(target error) bool {
	_, ok := target.(*ErrUpstreamStatus)
	return ok
}

// ErrUpstreamMalformed is returned when the upstream body cannot be decoded.
type ErrUpstreamMalformed struct {
	Err error
}

// Error implements the error interface.
func (e *ErrUpstreamMalformed) Error() string {
	return fmt.Sprintf("malformed upstream response: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ErrUpstreamMalformed) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamMalformed) Is(target error) bool {
	_, ok := target.(*ErrUpstreamMalformed)
	return ok
}

// ErrInvalidContentID is returned for identifiers that are not "tt" followed by digits.
type ErrInvalidContentID struct {
	ContentID string
}

// Error implements the error interface.
func (e *ErrInvalidContentID) Error() string {
	return fmt.Sprintf("invalid content ID %q", e.ContentID)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidContentID) Is(target error) bool {
	_, ok := target.(*ErrInvalidContentID)
	return ok
}

// NewInvalidContentIDError creates a new ErrInvalidContentID.
func NewInvalidContentIDError(contentID string) *ErrInvalidContentID {
	return &ErrInvalidContentID{ContentID: contentID}
}
