package middleware

import (
	"fmt"
	"runtime"
)

// Recovery creates a middleware that turns a runner panic into a *RecoveryError
func Recovery(opts ...MiddlewareOption) Middleware {
	config := newConfig(opts)

	return RecoveryWithHandler(func(panicVal any, script string, stack []byte) error {
		if config.PrintStack && len(stack) > 0 && config.Output != nil {
			fmt.Fprintf(config.Output, "PANIC in script '%s': %v\n", script, panicVal)
			fmt.Fprintf(config.Output, "Stack trace:\n%s\n", stack)
		}
		return &RecoveryError{Panic: panicVal, Script: script, Stack: stack}
	}, opts...)
}

// RecoveryWithHandler creates a recovery middleware with a custom panic handler
func RecoveryWithHandler(
	handler func(panicVal any, script string, stack []byte) error,
	opts ...MiddlewareOption,
) Middleware {
	config := newConfig(opts)

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack []byte
					if config.PrintStack {
						stack = captureStack(config.StackSize)
					}
					err = handler(r, scriptName(ctx), stack)
				}
			}()

			return next(ctx)
		}
	}
}

// RecoveryToError converts panics to errors without printing stack traces
func RecoveryToError() Middleware {
	return Recovery(WithStackTrace(false))
}

// SafeRecovery captures the stack without printing it and leaves the panic
// details in the context under "recovery.stack" and "recovery.value".
func SafeRecovery() Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := captureStack(4096)
					err = &RecoveryError{Panic: r, Script: scriptName(ctx), Stack: stack}
					ctx.Set("recovery.stack", string(stack))
					ctx.Set("recovery.value", r)
				}
			}()

			return next(ctx)
		}
	}
}

func captureStack(size int) []byte {
	stack := make([]byte, size)
	return stack[:runtime.Stack(stack, false)]
}
