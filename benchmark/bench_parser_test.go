//nolint:testpackage // using package name 'benchmark' to keep helpers next to the benchmarks
package benchmark

import (
	"testing"

	"github.com/buchizaodian/sdk/options"
)

// Category: parser

func BenchmarkParserScriptOnly(b *testing.B) {
	parser := options.NewParser(options.DefaultParseConfig())
	args := []string{"main.dart"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := parser.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if script, ok := s.Script(); !ok || script != "main.dart" {
			b.Fatal("script not parsed")
		}
	}
}

func BenchmarkParserDashAliases(b *testing.B) {
	parser := options.NewParser(options.DefaultParseConfig())
	args := []string{"--compile-all", "--trace-loading", "--snapshot-kind=app-jit", "--snapshot=app.jit", "main.dart"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := parser.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if s.SnapshotKind() != options.SnapshotKindAppJIT {
			b.Fatal("snapshot kind not parsed")
		}
	}
}

func BenchmarkParserObserve(b *testing.B) {
	parser := options.NewParser(options.DefaultParseConfig())
	args := []string{"--observe=0.0.0.0:9090", "--abi-version=2", "main.dart"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := parser.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if len(s.VMOptions()) == 0 {
			b.Fatal("observe options not added")
		}
	}
}

func BenchmarkParserEnvironment(b *testing.B) {
	parser := options.NewParser(options.DefaultParseConfig())
	args := []string{
		"-Dmode=release", "-Dtrace=false", "-Dflavor=prod",
		"--define=region=eu", "--define=build=1234", "main.dart",
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := parser.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if s.Environment().Len() != 5 {
			b.Fatal("environment not collected")
		}
	}
}

func BenchmarkParserErrorSuggestion(b *testing.B) {
	parser := options.NewParser(options.DefaultParseConfig())
	args := []string{"--packges=x", "main.dart"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(args); err == nil {
			b.Fatal("expected error")
		}
	}
}

func BenchmarkParserValidate(b *testing.B) {
	cfg := options.DefaultParseConfig()
	s, err := options.NewParser(cfg).Parse([]string{"--snapshot_kind=kernel", "--snapshot=out.dill", "main.dart"})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Validate(cfg); err != nil {
			b.Fatal(err)
		}
	}
}
