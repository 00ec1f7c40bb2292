package outcome

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure
type Kind string

const (
	// KindTransport indicates the retrieval call could not complete
	// (connectivity, DNS, TLS)
	KindTransport Kind = "TRANSPORT"
	// KindStatus indicates the retrieval completed with a non-success status
	KindStatus Kind = "STATUS"
	// KindParse indicates the response body could not be parsed as
	// structured data
	KindParse Kind = "PARSE"
)

// FetchError represents a failed fetch with its failure kind
type FetchError struct {
	Kind    Kind
	Message string
	// StatusCode is set only for KindStatus failures
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewError creates a new FetchError
func NewError(kind Kind, message string, err error) *FetchError {
	return &FetchError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NewStatusError creates a FetchError for a non-success response status
func NewStatusError(statusCode int) *FetchError {
	return &FetchError{
		Kind:       KindStatus,
		Message:    fmt.Sprintf("non-success response status: %d", statusCode),
		StatusCode: statusCode,
	}
}

// IsTransport checks if the error is a transport failure
func IsTransport(err error) bool {
	var ferr *FetchError
	if errors.As(err, &ferr) {
		return ferr.Kind == KindTransport
	}
	return false
}

// IsStatus checks if the error is a non-success status failure
func IsStatus(err error) bool {
	var ferr *FetchError
	if errors.As(err, &ferr) {
		return ferr.Kind == KindStatus
	}
	return false
}

// IsParse checks if the error is a body parse failure
func IsParse(err error) bool {
	var ferr *FetchError
	if errors.As(err, &ferr) {
		return ferr.Kind == KindParse
	}
	return false
}
