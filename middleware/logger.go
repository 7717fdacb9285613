package middleware

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	vmio "github.com/buchizaodian/sdk/io"
	"github.com/buchizaodian/sdk/options"
)

// Logger creates a middleware that records each launch to config.Output
func Logger(opts ...MiddlewareOption) Middleware {
	config := newConfig(opts)

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			if config.LogLevel == LogLevelNone || config.Output == nil {
				return next(ctx)
			}

			info := &RequestInfo{
				Script:    scriptName(ctx),
				Args:      ctx.Args(),
				StartTime: config.now(),
				Metadata:  launchMetadata(ctx.Settings()),
			}

			if config.LogLevel >= LogLevelDebug {
				logRequest(config, info, "START")
			}

			err := next(ctx)

			info.Duration = config.now().Sub(info.StartTime)
			info.Error = err
			logRequest(config, info, getLogLevel(err))

			return err
		}
	}
}

// LoggerWithWriter creates a logger middleware that writes to a specific writer
func LoggerWithWriter(writer io.Writer, opts ...MiddlewareOption) Middleware {
	return Logger(append(opts, WithOutput(writer))...)
}

// Trace logs the launch plan and its outcome through a vmio.Logger. The plan
// is written at debug level, so it only shows up with --verbose.
func Trace(logger *vmio.Logger) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			s := ctx.Settings()
			logger.Debug("launching %s %s", scriptName(ctx), strings.Join(ctx.Args(), " "))
			if addr, ok := s.ServiceAddress(); ok {
				logger.Debug("diagnostic service on %s", addr)
			}
			if n := s.Environment().Len(); n > 0 {
				logger.Debug("%d environment declaration(s)", n)
			}
			if vm := s.VMOptions(); len(vm) > 0 {
				logger.Debug("vm options: %s", strings.Join(vm, " "))
			}

			start := time.Now()
			err := next(ctx)
			if err != nil {
				logger.Debug("%s failed after %s: %v", scriptName(ctx), time.Since(start), err)
				return err
			}
			logger.Debug("%s finished in %s", scriptName(ctx), time.Since(start))
			return nil
		}
	}
}

// launchMetadata summarizes the options that change how the script runs.
func launchMetadata(s *options.Settings) map[string]any {
	md := make(map[string]any)
	if s == nil {
		return md
	}
	if addr, ok := s.ServiceAddress(); ok {
		md["service"] = addr.String()
	}
	if s.Observe() {
		md["observe"] = true
	}
	if kind := s.SnapshotKind(); kind != options.SnapshotKindNone {
		md["snapshot_kind"] = kind.String()
	}
	if v := s.ABIVersion(); v != options.ABIVersionUnset {
		md["abi_version"] = v
	}
	if n := s.Environment().Len(); n > 0 {
		md["defines"] = n
	}
	return md
}

func getLogLevel(err error) string {
	if err != nil {
		return "ERROR"
	}
	return "SUCCESS"
}

func logRequest(config *MiddlewareConfig, info *RequestInfo, level string) {
	if !shouldLog(config.LogLevel, level) {
		return
	}

	switch config.LogFormat { // exhaustive over LogFormat
	case LogFormatJSON:
		writeJSONLog(config.Output, info, level, config)
	case LogFormatText:
		writeTextLog(config.Output, info, level, config)
	default:
		writeTextLog(config.Output, info, level, config)
	}
}

func shouldLog(configLevel LogLevel, messageLevel string) bool {
	switch messageLevel {
	case "ERROR":
		return configLevel >= LogLevelError
	case "START":
		return configLevel >= LogLevelDebug
	default:
		return configLevel >= LogLevelInfo
	}
}

func writeTextLog(writer io.Writer, info *RequestInfo, level string, config *MiddlewareConfig) {
	var b strings.Builder
	b.Grow(256)

	b.WriteByte('[')
	b.WriteString(info.StartTime.Format("2006-01-02 15:04:05"))
	b.WriteString("] ")
	b.WriteString(level)
	b.WriteString(" script=")
	b.WriteString(info.Script)

	if info.Duration > 0 {
		b.WriteString(" duration=")
		b.WriteString(info.Duration.String())
	}

	if config.IncludeArgs && len(info.Args) > 0 {
		b.WriteString(" args=")
		b.WriteString(strings.Join(info.Args, " "))
	}

	if info.Error != nil {
		b.WriteString(" error=")
		b.WriteString(strconv.Quote(info.Error.Error()))
	}

	b.WriteByte('\n')

	//nolint:errcheck,gosec // Logging is best-effort; ignore write errors.
	io.WriteString(writer, b.String())
}

// jsonRecord is the JSON shape of a launch record.
type jsonRecord struct {
	Timestamp  string         `json:"timestamp"`
	Level      string         `json:"level"`
	Script     string         `json:"script"`
	DurationMS *int64         `json:"duration_ms,omitempty"`
	Args       []string       `json:"args,omitempty"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func writeJSONLog(writer io.Writer, info *RequestInfo, level string, config *MiddlewareConfig) {
	rec := jsonRecord{
		Timestamp: info.StartTime.Format(time.RFC3339),
		Level:     level,
		Script:    info.Script,
		Metadata:  info.Metadata,
	}
	if info.Duration > 0 {
		ms := info.Duration.Milliseconds()
		rec.DurationMS = &ms
	}
	if config.IncludeArgs {
		rec.Args = info.Args
	}
	if info.Error != nil {
		rec.Error = info.Error.Error()
	}

	//nolint:errcheck,gosec // Logging is best-effort; ignore write errors.
	json.NewEncoder(writer).Encode(rec)
}

// DebugLogger creates a logger with debug level (logs start and finish)
func DebugLogger() Middleware {
	return Logger(WithLogLevel(LogLevelDebug))
}

// ErrorLogger creates a logger that only records failed launches
func ErrorLogger() Middleware {
	return Logger(WithLogLevel(LogLevelError))
}

// JSONLogger creates a logger that outputs JSON lines
func JSONLogger() Middleware {
	return Logger(WithLogFormat(LogFormatJSON))
}
