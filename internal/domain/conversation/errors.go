package conversation

import "errors"

var (
	ErrStateNotFound = errors.New("conversation state not found")
	ErrInvalidInput  = errors.New("invalid input for the current step")
)
