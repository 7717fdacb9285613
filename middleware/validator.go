package middleware

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/buchizaodian/sdk/options"
)

// ValidatorFunc checks a launch before the runner starts. Use it for checks
// that need runtime state, such as files named by options.
type ValidatorFunc func(ctx Context) error

// NamedValidator associates a name with a ValidatorFunc for error reporting.
type NamedValidator struct {
	Name string
	Fn   ValidatorFunc
}

// Custom wraps an arbitrary ValidatorFunc with a name for reporting.
func Custom(name string, fn ValidatorFunc) NamedValidator {
	return NamedValidator{Name: name, Fn: fn}
}

// File returns a NamedValidator that ensures the given path options name
// existing files.
func File(fields ...options.StringField) NamedValidator {
	return NamedValidator{Name: "file_exists", Fn: FileExists(fields...)}
}

// Dir returns a NamedValidator that ensures the given path options name
// existing directories.
func Dir(fields ...options.StringField) NamedValidator {
	return NamedValidator{Name: "directory_exists", Fn: DirectoryExists(fields...)}
}

// Validate runs the validators in order before the action and stops at the
// first failure. Option errors and *ValidationError values are returned as
// is; anything else is wrapped in a *ValidationError.
func Validate(validators ...NamedValidator) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			for _, v := range validators {
				if v.Fn == nil {
					continue
				}
				if err := v.Fn(ctx); err != nil {
					return wrapValidation(v.Name, err)
				}
			}
			return next(ctx)
		}
	}
}

// Validator creates a middleware from the checks registered with
// WithCheck, run in name order.
func Validator(opts ...MiddlewareOption) Middleware {
	config := newConfig(opts)

	names := make([]string, 0, len(config.Checks))
	for name := range config.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	validators := make([]NamedValidator, 0, len(names))
	for _, name := range names {
		validators = append(validators, Custom(name, config.Checks[name]))
	}
	return Validate(validators...)
}

// WithCheck registers a named check for Validator.
func WithCheck(name string, fn ValidatorFunc) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		if config.Checks == nil {
			config.Checks = make(map[string]ValidatorFunc)
		}
		config.Checks[name] = fn
	}
}

func wrapValidation(name string, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	var parseErr *options.ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}
	return &ValidationError{Message: name + " failed", Cause: err}
}

// OptionCombinations checks option combinations with Settings.Validate.
func OptionCombinations(cfg options.ParseConfig) ValidatorFunc {
	return func(ctx Context) error {
		return ctx.Settings().Validate(cfg)
	}
}

// FileExists creates a validator that ensures path options name existing
// files. Options that were not given, or given empty, are skipped.
func FileExists(fields ...options.StringField) ValidatorFunc {
	return func(ctx Context) error {
		return checkPaths(ctx, fields, validateFileExists, "file")
	}
}

// DirectoryExists creates a validator that ensures path options name
// existing directories.
func DirectoryExists(fields ...options.StringField) ValidatorFunc {
	return func(ctx Context) error {
		return checkPaths(ctx, fields, validateDirectoryExists, "directory")
	}
}

func checkPaths(ctx Context, fields []options.StringField, check func(string) error, what string) error {
	s := ctx.Settings()
	for _, f := range fields {
		path, ok := s.GetString(f)
		if !ok || path == "" {
			continue
		}
		if err := check(path); err != nil {
			return &ValidationError{
				Option:  f.Name(),
				Value:   path,
				Message: what + " validation failed",
				Cause:   err,
			}
		}
	}
	return nil
}

func validateFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func validateDirectoryExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// Option files the VM reads before running the script.
var (
	inputFiles = []options.StringField{
		options.PackagesFile,
		options.SharedBlobsFilename,
		options.LoadCompilationTraceFilename,
		options.LoadTypeFeedbackFilename,
		options.RootCertsFile,
	}
	inputDirs = []options.StringField{
		options.PackageRoot,
		options.Namespace,
		options.RootCertsCache,
	}
)

// Preflight checks option combinations and the files and directories the VM
// will read.
func Preflight(cfg options.ParseConfig) Middleware {
	return Validate(
		Custom("option_combinations", OptionCombinations(cfg)),
		File(inputFiles...),
		Dir(inputDirs...),
	)
}

// NoopValidator creates a validator that doesn't perform any validation.
func NoopValidator() Middleware {
	return func(next ActionFunc) ActionFunc {
		return next
	}
}
