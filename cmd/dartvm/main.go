package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	vmio "github.com/buchizaodian/sdk/io"
	"github.com/buchizaodian/sdk/launcher"
	"github.com/buchizaodian/sdk/options"
)

const programName = "dartvm"

var version = "dev"

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute hosts the launcher in a cobra root command. Flag parsing is left
// to the launcher so that options after the script reach the script.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := 0
	root := &cobra.Command{
		Use:                programName + " [<vm-flags>] <script-file> [<script-arguments>]",
		Short:              "Start the VM and run a script",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			streams := vmio.New().WithOut(cmd.OutOrStdout()).WithErr(cmd.ErrOrStderr())
			var l *launcher.Launcher
			l = launcher.New(programName, version, launcher.RunnerFunc(
				func(ctx context.Context, launch *launcher.Launch) error {
					return printPlan(ctx, l.Logger(), launch)
				})).WithIO(streams)
			code = l.Run(cmd.Context(), args)
			return nil
		},
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 255
	}
	return code
}

// printPlan reports what the VM would do with the parsed options. Compiling
// and running the script is outside this binary.
func printPlan(ctx context.Context, logger *vmio.Logger, launch *launcher.Launch) error {
	s := launch.Settings()

	logger.Info("script: %s", launch.Script())
	if args := launch.Args(); len(args) > 0 {
		logger.Info("script arguments: %s", strings.Join(args, " "))
	}
	if p, ok := s.PackagesFile(); ok {
		logger.Info("packages: %s", p)
	}
	if addr, ok := s.ServiceAddress(); ok {
		logger.Info("diagnostic service: http://%s/", addr)
	}
	s.Environment().Each(func(name, value string) {
		logger.Info("define: %s=%s", name, value)
	})
	if kind := s.SnapshotKind(); kind != options.SnapshotKindNone {
		file, _ := s.SnapshotFilename()
		logger.Info("snapshot: %s (%s)", file, kind)
	}
	if v := s.ABIVersion(); v != options.ABIVersionUnset {
		logger.Info("abi version: %d", v)
	}
	if vm := s.VMOptions(); len(vm) > 0 {
		logger.Info("vm options: %s", strings.Join(vm, " "))
	}
	return ctx.Err()
}
