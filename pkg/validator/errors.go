package validator

import "errors"

// ErrValidationFailed is matched by every ValidationErrors value returned from Engine.Err.
var ErrValidationFailed = errors.New("validation failed")
