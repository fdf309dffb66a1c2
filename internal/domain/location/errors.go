package location

import "errors"

var (
	ErrUnknownIdentity = errors.New("identity is not bound to an employee")
	ErrSampleNotFound  = errors.New("no location sample found")
)
