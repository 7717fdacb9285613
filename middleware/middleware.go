// Package middleware provides the wrappers the launcher places around the
// script runner: panic recovery, launch tracing and pre-launch validation.
package middleware

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/buchizaodian/sdk/options"
)

// Context describes the launch that middleware observe. It is implemented
// by the launcher.
type Context interface {
	// Context returns the launch context. It is canceled when the launcher
	// is asked to stop.
	Context() context.Context

	// Script returns the script path, or "" when none was given.
	Script() string

	// Args returns the arguments passed through to the script. The returned
	// slice should be treated as read-only.
	Args() []string

	// Settings returns the parsed launcher options.
	Settings() *options.Settings

	// Set stores a key/value pair for later middleware. Keys should be
	// namespaced to avoid collisions (e.g., "recovery.stack").
	Set(key string, value any)

	// Get retrieves a value previously stored via Set, or nil.
	Get(key string) any
}

// ActionFunc runs a launch
type ActionFunc func(ctx Context) error

// Middleware defines the middleware function signature
type Middleware func(next ActionFunc) ActionFunc

// MiddlewareChain represents a chain of middleware functions
type MiddlewareChain []Middleware

// Apply applies the middleware chain to an ActionFunc. Middleware are wrapped
// in the order they appear in the chain.
func (chain MiddlewareChain) Apply(action ActionFunc) ActionFunc {
	for i := len(chain) - 1; i >= 0; i-- {
		action = chain[i](action)
	}
	return action
}

// Use returns a new chain with the provided middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	return append(chain, middleware...)
}

// Chain creates a new middleware chain from the provided middleware, preserving
// order.
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// ValidationError reports a failed pre-launch check
type ValidationError struct {
	Option  string
	Value   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Option != "" {
		msg = "--" + e.Option + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// RecoveryError represents a panic recovered from the runner
type RecoveryError struct {
	Panic  any
	Script string
	Stack  []byte
}

func (e *RecoveryError) Error() string {
	return "script '" + e.Script + "' panicked: " + toString(e.Panic)
}

// MiddlewareConfig contains configuration for middleware behavior
type MiddlewareConfig struct {
	LogLevel    LogLevel
	LogFormat   LogFormat
	Output      io.Writer
	IncludeArgs bool
	PrintStack  bool
	StackSize   int
	Checks      map[string]ValidatorFunc
	now         func() time.Time
}

// LogLevel represents logging levels
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// LogFormat represents log formats
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// RequestInfo describes one launch for the logger
type RequestInfo struct {
	Script    string
	Args      []string
	StartTime time.Time
	Duration  time.Duration
	Error     error
	Metadata  map[string]any
}

// MiddlewareOption adjusts a MiddlewareConfig
type MiddlewareOption func(config *MiddlewareConfig)

func DefaultConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		LogLevel:    LogLevelInfo,
		LogFormat:   LogFormatText,
		Output:      os.Stderr,
		IncludeArgs: true,
		PrintStack:  true,
		StackSize:   4096,
		Checks:      make(map[string]ValidatorFunc),
		now:         time.Now,
	}
}

func newConfig(opts []MiddlewareOption) *MiddlewareConfig {
	config := DefaultConfig()
	for _, option := range opts {
		option(config)
	}
	return config
}

func WithLogLevel(level LogLevel) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogLevel = level
	}
}

func WithLogFormat(format LogFormat) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogFormat = format
	}
}

func WithOutput(w io.Writer) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.Output = w
	}
}

func WithStackTrace(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.PrintStack = enabled
	}
}

func toString(v any) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func scriptName(ctx Context) string {
	if s := ctx.Script(); s != "" {
		return s
	}
	return "<none>"
}
