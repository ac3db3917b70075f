package services

import "errors"

// ErrNotFound covers unresolvable shortcuts and delete targets that are
// absent or owned by someone else.
var ErrNotFound = errors.New("not found")

// ValidationError is a field-scoped rejection of a create request. The
// request has no side effects when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
