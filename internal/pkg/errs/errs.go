package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrBackendIO         = errors.New("backend i/o failure")
	ErrDeliveryFailed    = errors.New("delivery failed")
)

// sanitize flattens user supplied values so they never break a log line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError reports that a keyed record is absent.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports malformed input (phone, postcode, status, order id).
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a numeric choice outside its bounds (catalog index, button index).
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, min, max any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max}
}

func NewValueIsOutOfRangeErrorWithCause(paramName string, value, min, max any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// DuplicateKeyError is returned when a unique key already exists in a table.
type DuplicateKeyError struct {
	Table string
	Key   string
}

func NewDuplicateKeyError(table, key string) *DuplicateKeyError {
	return &DuplicateKeyError{Table: table, Key: key}
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s already exists in %s", ErrDuplicateKey, sanitize(e.Key), e.Table)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// BackendIOError wraps a failed round-trip to the tabular backend or the transport.
type BackendIOError struct {
	Op    string
	Table string
	Cause error
}

func NewBackendIOError(op, table string, cause error) *BackendIOError {
	return &BackendIOError{Op: op, Table: table, Cause: cause}
}

func (e *BackendIOError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrBackendIO, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s (cause: %v)", ErrBackendIO, e.Op, e.Table, e.Cause)
}

// Is lets errors.Is match both the sentinel and the wrapped cause.
func (e *BackendIOError) Is(target error) bool {
	return target == ErrBackendIO
}

func (e *BackendIOError) Unwrap() error {
	return e.Cause
}

// DeliveryFailedError is a per-recipient send failure with a short reason code.
type DeliveryFailedError struct {
	Recipient int64
	Reason    string
	Cause     error
}

func NewDeliveryFailedError(recipient int64, reason string, cause error) *DeliveryFailedError {
	return &DeliveryFailedError{Recipient: recipient, Reason: reason, Cause: cause}
}

func (e *DeliveryFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: recipient %d, reason %s (cause: %s)", ErrDeliveryFailed, e.Recipient, e.Reason, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: recipient %d, reason %s", ErrDeliveryFailed, e.Recipient, e.Reason)
}

func (e *DeliveryFailedError) Is(target error) bool {
	return target == ErrDeliveryFailed
}

func (e *DeliveryFailedError) Unwrap() error {
	return e.Cause
}
