package benchmark_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/urfave/cli/v2"

	"github.com/buchizaodian/sdk/options"
)

// Each benchmark parses the same launcher command line: a handful of VM
// options, two environment declarations, then a script with its own
// arguments that must not be interpreted as options.

var launchArgs = []string{
	"--verbose",
	"--packages=.dart_tool/package_config.json",
	"--snapshot_kind=kernel",
	"--snapshot=out.dill",
	"--define=mode=release",
	"--define=trace=false",
	"--compile_all",
	"main.dart",
	"--port", "9000",
}

func BenchmarkLaunchArgs_Options(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s, err := options.Parse(launchArgs)
		if err != nil {
			b.Fatal(err)
		}
		if len(s.ScriptArgs()) != 2 {
			b.Fatal("script arguments not passed through")
		}
	}
}

func BenchmarkLaunchArgs_Pflag(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		fs := pflag.NewFlagSet("dart", pflag.ContinueOnError)
		fs.SetInterspersed(false)
		fs.BoolP("verbose", "v", false, "")
		fs.String("packages", "", "")
		fs.String("snapshot_kind", "none", "")
		fs.String("snapshot", "", "")
		fs.StringArrayP("define", "D", nil, "")
		fs.Bool("compile_all", false, "")
		if err := fs.Parse(launchArgs); err != nil {
			b.Fatal(err)
		}
		if fs.NArg() != 3 {
			b.Fatal("script arguments not passed through")
		}
	}
}

func BenchmarkLaunchArgs_Cobra(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{
			Use:  "dart",
			Args: cobra.ArbitraryArgs,
			Run:  func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().SetInterspersed(false)
		rootCmd.Flags().BoolP("verbose", "v", false, "")
		rootCmd.Flags().String("packages", "", "")
		rootCmd.Flags().String("snapshot_kind", "none", "")
		rootCmd.Flags().String("snapshot", "", "")
		rootCmd.Flags().StringArrayP("define", "D", nil, "")
		rootCmd.Flags().Bool("compile_all", false, "")
		rootCmd.SetArgs(launchArgs)
		if err := rootCmd.Execute(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLaunchArgs_Urfave(b *testing.B) {
	args := append([]string{"dart"}, launchArgs...)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "dart",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
				&cli.StringFlag{Name: "packages"},
				&cli.StringFlag{Name: "snapshot_kind", Value: "none"},
				&cli.StringFlag{Name: "snapshot"},
				&cli.StringSliceFlag{Name: "define", Aliases: []string{"D"}},
				&cli.BoolFlag{Name: "compile_all"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 3 {
					b.Fatal("script arguments not passed through")
				}
				return nil
			},
		}
		if err := app.Run(args); err != nil {
			b.Fatal(err)
		}
	}
}

// Short option clusters

func BenchmarkShortCluster_Options(b *testing.B) {
	args := []string{"-hv", "main.dart"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := options.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkShortCluster_Pflag(b *testing.B) {
	args := []string{"-hv", "main.dart"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		fs := pflag.NewFlagSet("dart", pflag.ContinueOnError)
		fs.SetInterspersed(false)
		fs.BoolP("help", "h", false, "")
		fs.BoolP("verbose", "v", false, "")
		if err := fs.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}
