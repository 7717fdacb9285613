package launcher

import (
	"context"

	"github.com/buchizaodian/sdk/options"
)

// Launch is one run of a script with parsed options. It implements
// middleware.Context.
type Launch struct {
	ctx      context.Context
	settings *options.Settings
	metadata map[string]any
}

func newLaunch(ctx context.Context, s *options.Settings) *Launch {
	return &Launch{ctx: ctx, settings: s}
}

// Context returns the launch context.
func (l *Launch) Context() context.Context { return l.ctx }

// Script returns the script path, or "" when none was given.
func (l *Launch) Script() string {
	s, _ := l.settings.Script()
	return s
}

// Args returns the arguments passed through to the script.
func (l *Launch) Args() []string { return l.settings.ScriptArgs() }

// Settings returns the parsed options.
func (l *Launch) Settings() *options.Settings { return l.settings }

// Set stores a value for later middleware or the runner.
func (l *Launch) Set(key string, value any) {
	if l.metadata == nil {
		l.metadata = make(map[string]any)
	}
	l.metadata[key] = value
}

// Get returns a value stored with Set, or nil.
func (l *Launch) Get(key string) any { return l.metadata[key] }
