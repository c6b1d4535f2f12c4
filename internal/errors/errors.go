package errors

import (
	stderrors "errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// InvalidFormatError reports a malformed input value.
type InvalidFormatError struct {
	Field   string
	Message string
}

func (e *InvalidFormatError) Error() string {
	return e.Message
}

func NewInvalidFormatError(field, message string) *InvalidFormatError {
	return &InvalidFormatError{Field: field, Message: message}
}

func IsInvalidFormatError(err error) (*InvalidFormatError, bool) {
	var fe *InvalidFormatError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// OutOfRangeError reports a numeric bound violation.
type OutOfRangeError struct {
	Field   string
	Message string
}

func (e *OutOfRangeError) Error() string {
	return e.Message
}

func NewOutOfRangeError(field, message string) *OutOfRangeError {
	return &OutOfRangeError{Field: field, Message: message}
}

func IsOutOfRangeError(err error) (*OutOfRangeError, bool) {
	var re *OutOfRangeError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// DuplicateKeyError reports a uniqueness violation.
type DuplicateKeyError struct {
	Field   string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func NewDuplicateKeyError(field, message string) *DuplicateKeyError {
	return &DuplicateKeyError{Field: field, Message: message}
}

func IsDuplicateKeyError(err error) (*DuplicateKeyError, bool) {
	var de *DuplicateKeyError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// NotFoundError reports a referenced entity that does not exist. MissingIDs
// is set when a lookup by several ids came back short.
type NotFoundError struct {
	Message    string
	MissingIDs []uint
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string, missingIDs ...uint) *NotFoundError {
	return &NotFoundError{Message: message, MissingIDs: missingIDs}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if stderrors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// InvalidInputError reports a structurally invalid request, e.g. an order
// without products.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func NewInvalidInputError(message string) *InvalidInputError {
	return &InvalidInputError{Message: message}
}

func IsInvalidInputError(err error) (*InvalidInputError, bool) {
	var ie *InvalidInputError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// CodeInternal is reported for every error outside the taxonomy, on REST and
// GraphQL alike.
const CodeInternal = "INTERNAL_ERROR"

// Code maps an error onto its taxonomy name.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case isType[*InvalidFormatError](err):
		return "INVALID_FORMAT"
	case isType[*OutOfRangeError](err):
		return "OUT_OF_RANGE"
	case isType[*DuplicateKeyError](err):
		return "DUPLICATE_KEY"
	case isType[*NotFoundError](err):
		return "NOT_FOUND"
	case isType[*InvalidInputError](err):
		return "INVALID_INPUT"
	case isType[*ValidationError](err):
		return "VALIDATION_ERROR"
	default:
		return CodeInternal
	}
}

func isType[T error](err error) bool {
	var target T
	return stderrors.As(err, &target)
}
