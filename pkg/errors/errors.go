// Package errors provides the error taxonomy produced during message
// resolution and resource loading.
package errors

import "fmt"

// Kind classifies an error into one of the stable categories tests match
// against. String values, not iota, so they read well in logs.
type Kind string

const (
	KindReference          Kind = "reference"           // unknown message/term/attribute/variant/variable/function
	KindCyclicReference    Kind = "cyclic-reference"     // pattern re-entered during its own resolution
	KindDuplicateMessageID Kind = "duplicate-message-id" // two definitions with the same id during load
	KindJunk               Kind = "junk"                 // parser emitted a Junk node
	KindType               Kind = "type"                 // bad function arguments, unsupported value, escaper mismatch
	KindValue              Kind = "value"                // MAX_PARTS / MAX_PART_LENGTH exceeded
)

// FluentError is the base type every error produced by this module embeds.
// It is never constructed directly; use the Kind-specific constructors.
type FluentError struct {
	kind    Kind
	message string
}

func (e *FluentError) Error() string { return e.message }

// Kind returns the stable error category.
func (e *FluentError) Kind() Kind { return e.kind }

// Is lets errors.Is match any two FluentErrors of the same kind, mirroring
// how the Python runtime's bare exception classes compare by type.
func (e *FluentError) Is(target error) bool {
	t, ok := target.(interface{ Kind() Kind })
	if !ok {
		return false
	}
	return e.kind == t.Kind()
}

func newFluentError(kind Kind, message string) *FluentError {
	return &FluentError{kind: kind, message: message}
}

// ReferenceError reports a lookup failure for a message, term, attribute,
// variant, variable, or function.
type ReferenceError struct{ *FluentError }

// NewReferenceError builds a ReferenceError with a formatted message, e.g.
// NewReferenceError("Unknown message: %s", id).
func NewReferenceError(format string, args ...interface{}) *ReferenceError {
	return &ReferenceError{newFluentError(KindReference, fmt.Sprintf(format, args...))}
}

// CyclicReferenceError reports a pattern that referenced itself, directly or
// transitively, during its own resolution.
type CyclicReferenceError struct{ *FluentError }

// NewCyclicReferenceError builds a CyclicReferenceError.
func NewCyclicReferenceError(message string) *CyclicReferenceError {
	return &CyclicReferenceError{newFluentError(KindCyclicReference, message)}
}

// DuplicateMessageIDError reports two top-level definitions sharing an id.
type DuplicateMessageIDError struct{ *FluentError }

// NewDuplicateMessageIDError builds a DuplicateMessageIDError.
func NewDuplicateMessageIDError(id string) *DuplicateMessageIDError {
	return &DuplicateMessageIDError{newFluentError(KindDuplicateMessageID,
		fmt.Sprintf("Duplicate message id: %s", id))}
}

// JunkError reports a resource fragment the parser could not make sense of.
type JunkError struct{ *FluentError }

// NewJunkError builds a JunkError from the concatenated parser annotations.
func NewJunkError(annotations string) *JunkError {
	return &JunkError{newFluentError(KindJunk, annotations)}
}

// TypeError reports bad function arguments, an unsupported external value
// type, an escaper incompatibility, or a compile-time type misuse.
type TypeError struct{ *FluentError }

// NewTypeError builds a TypeError with a formatted message.
func NewTypeError(format string, args ...interface{}) *TypeError {
	return &TypeError{newFluentError(KindType, fmt.Sprintf(format, args...))}
}

// ValueError reports a resource cap (MAX_PARTS / MAX_PART_LENGTH) exceeded.
type ValueError struct{ *FluentError }

// NewValueError builds a ValueError with a formatted message.
func NewValueError(format string, args ...interface{}) *ValueError {
	return &ValueError{newFluentError(KindValue, fmt.Sprintf(format, args...))}
}

// LookupError is the programmer-visible failure Format reports when the
// requested top-level message id does not exist at all. Unlike every other
// error in this package it carries no Kind, and it is never reported next to
// formatting errors: when it occurs nothing is formatted and it is the only
// entry in the call's error list.
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("fluent: no message or attribute with id %q", e.ID)
}

// NewLookupError builds a LookupError for the given id.
func NewLookupError(id string) *LookupError {
	return &LookupError{ID: id}
}
