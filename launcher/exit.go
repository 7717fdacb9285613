package launcher

import (
	"errors"
	"reflect"

	"github.com/buchizaodian/sdk/middleware"
	"github.com/buchizaodian/sdk/options"
)

// ExitError is a sentinel used to request a specific exit code from a runner.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds the VM's conventional exit codes.
type ExitCodeDefaults struct {
	Success          int // default: 0
	APIError         int // default: 253
	CompilationError int // default: 254
	Error            int // default: 255
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, APIError: 253, CompilationError: 254, Error: 255}
}

type typeMapping struct {
	typ  reflect.Type
	code int
}

// ExitCodeManager maps errors and categories to process exit codes.
type ExitCodeManager struct {
	codesByOption map[options.ErrorType]int
	codesByType   []typeMapping
	defaults      ExitCodeDefaults
}

func newExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByOption: make(map[options.ErrorType]int),
		defaults:      defaultExitDefaults(),
	}
	m.DefineError(&middleware.ValidationError{}, m.defaults.Error)
	m.DefineError(&middleware.RecoveryError{}, m.defaults.Error)
	return m
}

// DefineError maps a concrete error value (by its dynamic type) to an exit
// code. Mappings are tried in the order they were defined; redefining a
// type replaces its code.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	t := reflect.TypeOf(err)
	for i := range e.codesByType {
		if e.codesByType[i].typ == t {
			e.codesByType[i].code = code
			return e
		}
	}
	e.codesByType = append(e.codesByType, typeMapping{typ: t, code: code})
	return e
}

// DefineOption overrides the exit code for one option error category.
func (e *ExitCodeManager) DefineOption(typ options.ErrorType, code int) *ExitCodeManager {
	e.codesByOption[typ] = code
	return e
}

// Default replaces the manager's default codes.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager { e.defaults = d; return e }

// Defaults returns the current default codes.
func (e *ExitCodeManager) Defaults() ExitCodeDefaults { return e.defaults }

// Resolve converts an error to an exit code according to registered mappings.
// Precedence:
//  1. ExitError (requested code)
//  2. option error category (DefineOption), else the default error code
//  3. concrete error type (DefineError)
//  4. default error code
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var parseErr *options.ParseError
	if errors.As(err, &parseErr) {
		if code, ok := e.codesByOption[parseErr.Type]; ok {
			return code
		}
		return e.defaults.Error
	}

	for _, m := range e.codesByType {
		if errors.As(err, reflect.New(m.typ).Interface()) {
			return m.code
		}
	}

	return e.defaults.Error
}
