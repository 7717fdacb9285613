package options

import (
	"fmt"
	"strings"

	"github.com/buchizaodian/sdk/internal/fuzzy"
)

// ErrorType represents the category of a parse failure.
// The launcher maps these categories to exit codes.
type ErrorType string

const (
	ErrorTypeUnknownOption           ErrorType = "unknown_option"
	ErrorTypeMissingValue            ErrorType = "missing_value"
	ErrorTypeUnexpectedValue         ErrorType = "unexpected_value"
	ErrorTypeInvalidEnumValue        ErrorType = "invalid_enum_value"
	ErrorTypeInvalidAddress          ErrorType = "invalid_address"
	ErrorTypeInvalidEnvironmentEntry ErrorType = "invalid_environment_entry"
	ErrorTypeInvalidABIVersion       ErrorType = "invalid_abi_version"
	ErrorTypeIncompatibleOptions     ErrorType = "incompatible_options"
)

// Sentinels for errors.Is. They match any *ParseError of the same type.
var (
	ErrUnknownOption           = &ParseError{Type: ErrorTypeUnknownOption}
	ErrMissingValue            = &ParseError{Type: ErrorTypeMissingValue}
	ErrUnexpectedValue         = &ParseError{Type: ErrorTypeUnexpectedValue}
	ErrInvalidEnumValue        = &ParseError{Type: ErrorTypeInvalidEnumValue}
	ErrInvalidAddress          = &ParseError{Type: ErrorTypeInvalidAddress}
	ErrInvalidEnvironmentEntry = &ParseError{Type: ErrorTypeInvalidEnvironmentEntry}
	ErrInvalidABIVersion       = &ParseError{Type: ErrorTypeInvalidABIVersion}
	ErrIncompatibleOptions     = &ParseError{Type: ErrorTypeIncompatibleOptions}
)

// ParseError is returned for every rejected argument vector.
type ParseError struct {
	Type       ErrorType
	Message    string
	Option     string   // option name without dashes, e.g. "snapshot_kind"
	Token      string   // argument exactly as given
	Allowed    []string // accepted values for enum options
	Suggestion string   // closest known option for unknown ones
	Cause      error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for e's type.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok || t.Message != "" {
		return false
	}
	return t.Type == e.Type
}

// NewParseError creates a ParseError with the given type and message.
func NewParseError(typ ErrorType, format string, args ...any) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: fmt.Sprintf(format, args...),
	}
}

// at attaches the offending option and prefixes the message with the flag
// as the user spelled it.
func (e *ParseError) at(d *Descriptor, token string) *ParseError {
	e.Option = d.Name
	e.Token = token
	e.Message = d.spelling(token) + ": " + e.Message
	return e
}

func unknownOptionError(name, token string) *ParseError {
	err := NewParseError(ErrorTypeUnknownOption, "unknown option: %s", token)
	err.Option = name
	err.Token = token
	if len(name) > 1 {
		err.Suggestion = fuzzy.FindBestOption(name, Names(), 2)
	}
	return err
}

func missingValueError(d *Descriptor, token string) *ParseError {
	return NewParseError(ErrorTypeMissingValue, "option requires a value").at(d, token)
}

func unexpectedValueError(d *Descriptor, token string) *ParseError {
	return NewParseError(ErrorTypeUnexpectedValue, "option does not take a value").at(d, token)
}

func invalidEnumError(d *Descriptor, token, value string) *ParseError {
	allowed := d.Enum.Names()
	err := NewParseError(ErrorTypeInvalidEnumValue,
		"invalid value %q, valid values: %s", value, strings.Join(allowed, ", ")).at(d, token)
	err.Allowed = allowed
	return err
}
