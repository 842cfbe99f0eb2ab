package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing collection or other resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a collection that is already defined.
	ErrAlreadyExists = errors.New("already exists")
	// ErrMissingAPIKey signals a vectorizer whose provider key is not configured.
	ErrMissingAPIKey = errors.New("vectorizer api key missing")
	// ErrObjectNotFound signals a missing object.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidObjectID signals a malformed object UUID.
	ErrInvalidObjectID = errors.New("invalid object id")
	// ErrInvalidEnumValue signals an enum-like config field outside its vocabulary.
	ErrInvalidEnumValue = errors.New("invalid enum value")
	// ErrInvalidFieldValue signals a config field with a value of the wrong type.
	ErrInvalidFieldValue = errors.New("invalid field value")
	// ErrInvalidPropertyValue signals an edited property that could not be encoded.
	ErrInvalidPropertyValue = errors.New("invalid property value")
	// ErrValidation signals a malformed request.
	ErrValidation = errors.New("validation failed")
	// ErrRemote signals a failure reported by the database cluster.
	ErrRemote = errors.New("remote error")
)

// InvalidEnumValueError names the config field and the rejected value.
type InvalidEnumValueError struct {
	Field string
	Value any
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("%s: %s=%v", ErrInvalidEnumValue.Error(), e.Field, e.Value)
}

func (e *InvalidEnumValueError) Unwrap() error { return ErrInvalidEnumValue }

// NewInvalidEnumValue creates an invalid enum value error.
func NewInvalidEnumValue(field string, value any) error {
	return &InvalidEnumValueError{Field: field, Value: value}
}

// InvalidFieldValueError names a config field whose value has the wrong type.
type InvalidFieldValueError struct {
	Field string
	Value any
	Want  string
}

func (e *InvalidFieldValueError) Error() string {
	return fmt.Sprintf("%s: %s=%v (want %s)", ErrInvalidFieldValue.Error(), e.Field, e.Value, e.Want)
}

func (e *InvalidFieldValueError) Unwrap() error { return ErrInvalidFieldValue }

// NewInvalidFieldValue creates an invalid field value error.
func NewInvalidFieldValue(field string, value any, want string) error {
	return &InvalidFieldValueError{Field: field, Value: value, Want: want}
}

// InvalidPropertyValueError lists the object properties that could not be encoded.
type InvalidPropertyValueError struct {
	Properties []string
}

func (e *InvalidPropertyValueError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPropertyValue.Error(), strings.Join(e.Properties, ", "))
}

func (e *InvalidPropertyValueError) Unwrap() error { return ErrInvalidPropertyValue }

// RemoteError carries a failure returned by the database cluster.
// Message is the server's own text and is surfaced to users verbatim.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error { return ErrRemote }
