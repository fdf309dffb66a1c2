package identity

import "errors"

var (
	// ErrConflict is returned by Create when the external id is already bound
	// or the employee id is already taken by another identity.
	ErrConflict        = errors.New("identity or employee id already bound")
	ErrBindingNotFound = errors.New("binding not found")
)
