package rules

import "errors"

var (
	// ErrInvalidPattern is returned when a pattern expression does not compile.
	ErrInvalidPattern = errors.New("invalid pattern expression")

	// ErrUnknownType is returned when a declaration names a type with no validator.
	ErrUnknownType = errors.New("unknown field type")

	// ErrUnknownCondition is returned when a required-if condition kind is not recognized.
	ErrUnknownCondition = errors.New("unknown required-if condition")

	// ErrInvalidRange is returned when range bounds cannot produce choices.
	ErrInvalidRange = errors.New("invalid range bounds")

	// ErrParsingRules is returned when a rule document cannot be decoded.
	ErrParsingRules = errors.New("failed to parse rule document")
)
