// Package cmd implements the mdexec command line.
package cmd

import (
	"context"
	_ "embed"
	"io"
	"os"
	"os/signal"

	"github.com/ezerfernandes/mdexec/internal/config"
	"github.com/ezerfernandes/mdexec/internal/logger"
	"github.com/spf13/cobra"
)

//go:embed help/root.md
var rootHelp string

func rootCmd() *cobra.Command {
	opts := new(options)

	root := &cobra.Command{ //nolint:exhaustruct
		Use:   "mdexec",
		Short: "Run the code blocks of a Markdown document",
		Long:  rootHelp,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}

			opts.cfg = cfg
			opts.log = logger.New(cmd.ErrOrStderr(), cfg.Log.Level)
			opts.createStatus(cmd.ErrOrStderr())

			opts.filter, err = filter(opts.lang)

			return err
		},

		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	flags := root.PersistentFlags()

	flags.StringVarP(&opts.configFile, "config", "c", "", "configuration file (YAML)")
	flags.String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress messages")
	flags.StringSliceVarP(&opts.lang, "lang", "l", nil, "only blocks whose language matches one of these glob patterns")

	root.AddCommand(execCmd(opts), extractCmd(opts), listCmd(opts), checkCmd(opts))

	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute(args []string, stdout, stderr io.Writer) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := run(ctx, args, stdout, stderr)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := rootCmd()

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(os.Stdin)

	return root.ExecuteContext(ctx)
}
