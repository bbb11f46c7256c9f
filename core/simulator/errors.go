package simulator

import "errors"

var (
	// ErrValidation marks input rejected by a validation rule.
	ErrValidation = errors.New("validation failed")
	// ErrMalformedInput marks an uploaded payload that could not be decoded.
	ErrMalformedInput = errors.New("malformed input")
)

// Messages returned to callers.
const (
	MsgInvalidT         = "Invalid input value"
	MsgEmptyName        = "Power plant name cannot be empty"
	MsgNegativeAge      = "Power plant age cannot be negative"
	MsgAgeOutOfRange    = "Power plant age is out of range"
	MsgInvalidJSONFile  = "Invalid Json file format"
	MsgErrorReadingFile = "Error reading file"
)

// ValidationError reports the first violated validation rule.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MalformedInputError reports an upload that is not a JSON array of plants.
type MalformedInputError struct {
	Msg string
	Err error
}

func (e *MalformedInputError) Error() string { return e.Msg }

func (e *MalformedInputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedInput}
	}
	return []error{ErrMalformedInput, e.Err}
}
