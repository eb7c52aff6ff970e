// Package storeerr specifically handles document store driver errors.
//
// It unwraps errors returned by the MongoDB driver and converts them into
// user-friendly HTTP errors (e.g., converting a duplicate key error into a
// "Bad Request" error).
package storeerr

import (
	"fmt"
)

// Code categorizes a store failure.
type Code string

const (
	// NotFound means the filter matched no document.
	NotFound Code = "not_found"
	// DuplicateKey means a unique index rejected the write.
	DuplicateKey Code = "duplicate_key"
	// DocumentInvalid means collection schema validation rejected the write.
	DocumentInvalid Code = "document_invalid"
	// Other is any failure not listed above.
	Other Code = "other"
)

// documentValidationFailure is the server error code for a rejected write
// against a collection with a $jsonSchema validator.
const documentValidationFailure = 121

// OpError records the collection and operation a store failure came from.
//
// Repositories wrap every driver error in an OpError so HandleError can name
// the entity in client messages without parsing error strings.
type OpError struct {
	Collection string
	Op         string
	Err        error
}

// Wrap returns nil when err is nil, an *OpError otherwise.
func Wrap(collection, op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Collection: collection, Op: op, Err: err}
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
