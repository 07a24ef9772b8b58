package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webify/internal/services"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	jsonOutput bool
	quiet      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	ctx := newCommandContext(opts)

	rootCmd := &cobra.Command{
		Use:           "webify <input-archive-path> <target-id> [<output-root>] [<media-url-prepend>]",
		Short:         "Convert an exported Anki deck into static web files",
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, args)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return services.Wrap(services.ErrInvalidInvocation, "", "parse flags", fmt.Sprintf("%v\nusage: %s", err, cmd.UseLine()), nil)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format override (console, json)")
	rootCmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the conversion result as JSON")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress the conversion summary")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return services.Wrap(services.ErrInvalidInvocation, "", "parse arguments",
			fmt.Sprintf("expected 2 to 4 arguments, got %d\nusage: %s", len(args), cmd.UseLine()), nil)
	}
	return nil
}
