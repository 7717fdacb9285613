package vmio

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger() (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	m := New().WithOut(&out).WithErr(&errOut).NoColor()
	return NewLogger(m), &out, &errOut
}

func TestLoggerLevels(t *testing.T) {
	l, out, errOut := newTestLogger()

	l.Debug("hidden")
	l.Info("starting %s", "main.dart")
	l.Success("done")
	l.Warning("careful")
	l.Error("failed: %d", 3)

	if strings.Contains(out.String(), "hidden") {
		t.Fatalf("debug should be dropped at the default level: %q", out.String())
	}
	if out.String() != "◆ starting main.dart\n✓ done\n" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	if errOut.String() != "▲ careful\n✗ failed: 3\n" {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}

	out.Reset()
	l.WithLevel(LevelDebug).Debug("shown")
	if out.String() != "● shown\n" {
		t.Fatalf("unexpected debug output: %q", out.String())
	}
	if l.Level() != LevelDebug {
		t.Fatalf("want level DEBUG, got %s", l.Level())
	}
}

func TestLoggerFormats(t *testing.T) {
	tests := []struct {
		format LogFormat
		want   string
	}{
		{LogFormatSymbols, "◆ hello\n"},
		{LogFormatTagged, "[INFO] hello\n"},
		{LogFormatPlain, "hello\n"},
	}

	for _, tt := range tests {
		l, out, _ := newTestLogger()
		l.WithFormat(tt.format).Info("hello")
		if out.String() != tt.want {
			t.Errorf("format %d: want %q, got %q", tt.format, tt.want, out.String())
		}
	}
}

func TestLoggerTimestampAndPrefix(t *testing.T) {
	l, out, _ := newTestLogger()
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.WithTimestamp(true).SetPrefix(LevelInfo, "vm:").Info("ready")
	if out.String() != "vm: [03:04:05] ready\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	l.WithFormat(LogFormatPlain).WithTimeFormat("15:04").Info("ready")
	if out.String() != "[03:04] ready\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLoggerBlankMessage(t *testing.T) {
	l, out, _ := newTestLogger()
	l.Info("  ")
	if out.String() != "  \n" {
		t.Fatalf("blank messages should pass through, got %q", out.String())
	}
}

func TestLoggerErrorsToStdout(t *testing.T) {
	l, out, errOut := newTestLogger()
	l.ErrorsToStderr(false).Error("boom")
	if errOut.Len() != 0 || out.String() != "✗ boom\n" {
		t.Fatalf("want errors on stdout, got out=%q err=%q", out.String(), errOut.String())
	}
}

func TestLoggerColor(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(New().WithOut(&out).ForceColor())
	l.Info("hi")
	if !strings.HasPrefix(out.String(), "\x1b[34m") {
		t.Fatalf("want blue info line, got %q", out.String())
	}
}

func TestLogLevelString(t *testing.T) {
	if LevelWarning.String() != "WARN" || LogLevel(99).String() != "UNKNOWN" {
		t.Fatalf("unexpected level names")
	}
}
