package outcome

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
)

// Document is a parsed structured value decoded from a response body.
// The underlying value is one of the concrete JSON shapes: an object
// (map[string]any), an array ([]any), or a scalar (string, float64,
// bool, nil).
type Document struct {
	value any
}

// Decode reads a single JSON document from r. Trailing non-whitespace
// content after the document is rejected.
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)

	var v any
	if err := dec.Decode(&v); err != nil {
		return Document{}, err
	}

	// A well-formed body contains exactly one document
	if err := dec.Decode(new(any)); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after document")
		}
		return Document{}, err
	}

	return Document{value: v}, nil
}

// Value returns the underlying decoded value.
func (d Document) Value() any {
	return d.value
}

// Object returns the document as a JSON object, if it is one.
func (d Document) Object() (map[string]any, bool) {
	obj, ok := d.value.(map[string]any)
	return obj, ok
}

// Array returns the document as a JSON array, if it is one.
func (d Document) Array() ([]any, bool) {
	arr, ok := d.value.([]any)
	return arr, ok
}

// Equal reports whether two documents hold equal values.
func (d Document) Equal(other Document) bool {
	return reflect.DeepEqual(d.value, other.value)
}

// Outcome is the tagged result of one fetch operation: either a Success
// carrying the parsed document, or a Failure carrying a FetchError.
// An outcome is never both.
type Outcome struct {
	doc Document
	err *FetchError
}

// Success creates a successful outcome carrying the parsed document
func Success(doc Document) Outcome {
	return Outcome{doc: doc}
}

// Failure creates a failed outcome carrying the fetch error
func Failure(err *FetchError) Outcome {
	return Outcome{err: err}
}

// IsSuccess reports whether the outcome is a success
func (o Outcome) IsSuccess() bool {
	return o.err == nil
}

// Document returns the parsed document and true if the outcome is a success
func (o Outcome) Document() (Document, bool) {
	if o.err != nil {
		return Document{}, false
	}
	return o.doc, true
}

// Err returns the fetch error, or nil for a success
func (o Outcome) Err() *FetchError {
	return o.err
}
