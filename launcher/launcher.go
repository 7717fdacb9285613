// Package launcher drives a VM start: it parses the argument vector, honours
// the help/version/error exit contract and hands the script to a Runner.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	vmio "github.com/buchizaodian/sdk/io"
	"github.com/buchizaodian/sdk/middleware"
	"github.com/buchizaodian/sdk/options"
)

// ErrNoScript is reported when neither a script nor an early-exit option
// was given.
var ErrNoScript = errors.New("no script specified")

// Runner executes the script described by a Launch.
type Runner interface {
	Run(ctx context.Context, launch *Launch) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, launch *Launch) error

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, launch *Launch) error { return f(ctx, launch) }

// Launcher ties option parsing to a Runner.
type Launcher struct {
	name    string
	version string
	runner  Runner

	cfg        options.ParseConfig
	io         *vmio.IOManager
	logger     *vmio.Logger
	middleware middleware.MiddlewareChain
	exitCodes  *ExitCodeManager
}

// New creates a launcher for the named program.
func New(name, version string, runner Runner) *Launcher {
	streams := vmio.New()
	return &Launcher{
		name:    name,
		version: version,
		runner:  runner,
		cfg:     options.DefaultParseConfig(),
		io:      streams,
		logger:  vmio.NewLogger(streams),
	}
}

// WithIO replaces the IO manager and rebinds the logger to it.
func (l *Launcher) WithIO(streams *vmio.IOManager) *Launcher {
	l.io = streams
	l.logger = vmio.NewLogger(streams)
	return l
}

// WithConfig sets the parse configuration.
func (l *Launcher) WithConfig(cfg options.ParseConfig) *Launcher {
	l.cfg = cfg
	return l
}

// Use appends middleware around the runner. They run inside the built-in
// recovery, tracing and preflight checks.
func (l *Launcher) Use(mw ...middleware.Middleware) *Launcher {
	l.middleware = l.middleware.Use(mw...)
	return l
}

// IO returns the launcher's IO manager.
func (l *Launcher) IO() *vmio.IOManager { return l.io }

// Logger returns the launcher's logger.
func (l *Launcher) Logger() *vmio.Logger { return l.logger }

// ExitCodes returns the exit-code manager. Use it to override mappings.
func (l *Launcher) ExitCodes() *ExitCodeManager {
	if l.exitCodes == nil {
		l.exitCodes = newExitCodeManager()
	}
	return l.exitCodes
}

// Run parses args, runs the script and returns the process exit code.
// The process-wide settings are torn down before it returns.
func (l *Launcher) Run(ctx context.Context, args []string) int {
	defer options.Destroy()

	s, err := options.ParseArguments(args, l.cfg)
	if err != nil {
		return l.fail(err, true)
	}

	if s.Verbose() || s.TraceLoading() {
		l.logger.WithLevel(vmio.LevelDebug)
	}

	switch {
	case s.HelpRequested():
		return l.finish(options.WriteUsage(l.io.Out(), l.name, s.Verbose()))
	case s.VersionRequested():
		return l.finish(options.WriteVersion(l.io.Out(), l.name, l.version))
	}

	if _, ok := s.Script(); !ok {
		if s.PrintFlagsSeen() {
			return l.finish(writeVMOptions(l.io.Out(), s.VMOptions()))
		}
		return l.fail(ErrNoScript, true)
	}

	launch := newLaunch(ctx, s)
	chain := middleware.Chain(
		middleware.Recovery(middleware.WithStackTrace(s.Verbose()), middleware.WithOutput(l.io.Err())),
		middleware.Trace(l.logger),
		middleware.Preflight(l.cfg),
	).Use(l.middleware...)

	run := chain.Apply(func(middleware.Context) error {
		return l.runner.Run(ctx, launch)
	})
	if err := run(launch); err != nil {
		var parseErr *options.ParseError
		return l.fail(err, errors.As(err, &parseErr))
	}
	return l.ExitCodes().Defaults().Success
}

func (l *Launcher) finish(err error) int {
	if err != nil {
		return l.fail(err, false)
	}
	return l.ExitCodes().Defaults().Success
}

// writeVMOptions lists the VM flags one per line. With --print_flags and
// no script this is all the launcher does.
func writeVMOptions(w io.Writer, vmOptions []string) error {
	for _, opt := range vmOptions {
		if _, err := fmt.Fprintln(w, opt); err != nil {
			return err
		}
	}
	return nil
}

// fail reports err on the error stream and maps it to an exit code.
func (l *Launcher) fail(err error, usageHint bool) int {
	w := l.io.Err()

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Err != nil {
		fmt.Fprintf(w, "%s %v\n", l.io.Colorize("Error:", color.FgRed, color.Bold), err)
	}

	var parseErr *options.ParseError
	if errors.As(err, &parseErr) && parseErr.Suggestion != "" {
		fmt.Fprintf(w, "Did you mean --%s?\n", parseErr.Suggestion)
	}
	if usageHint {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", l.name)
	}

	return l.ExitCodes().Resolve(err)
}
