// Package guard provides ConstructorGuard, a marker embedded in commands and
// queries so that zero-value instances are rejected by their Validate method.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether a value went through its constructor.
//
// Example:
//
//	type SubscribeCommand struct {
//	    userID  int64
//	    orderID string
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c SubscribeCommand) Validate() error {
//	    return c.guard.Validate(ErrSubscribeCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
