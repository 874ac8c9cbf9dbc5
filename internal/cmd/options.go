package cmd

import (
	"fmt"
	"io"

	"github.com/ezerfernandes/mdexec/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type statusFunc func(format string, args ...interface{})

type options struct {
	configFile string
	quiet      bool
	lang       []string
	dryRun     bool

	cfg    *config.Config
	log    zerolog.Logger
	status statusFunc
	filter filterFunc
}

func (opts *options) createStatus(w io.Writer) {
	if opts.quiet {
		opts.status = func(string, ...interface{}) {}

		return
	}

	opts.status = func(format string, args ...interface{}) {
		fmt.Fprintf(w, format, args...)
	}
}

func dirFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", ".mdexec", "working directory for extracted blocks, recreated on every run")
}

func checkargs(cmd *cobra.Command, args []string) error {
	return cobra.MaximumNArgs(1)(cmd, args)
}
