package main

import (
	"github.com/spf13/cobra"

	"webify/internal/logging"
	"webify/internal/pipeline"
)

func runConvert(cmd *cobra.Command, ctx *commandContext, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	req := pipeline.Request{
		ArchivePath:  args[0],
		TargetID:     args[1],
		OutputRoot:   cfg.Paths.OutputRoot,
		MediaPrepend: cfg.Media.URLPrepend,
	}
	if len(args) > 2 {
		req.OutputRoot = args[2]
	}
	if len(args) > 3 {
		req.MediaPrepend = args[3]
	}
	logger.Debug("resolved conversion request",
		logging.String("config_path", ctx.configPath),
		logging.String("output_root", req.OutputRoot),
		logging.String("media_prepend", req.MediaPrepend),
	)

	result, err := pipeline.Run(cmd.Context(), req, logger)
	if err != nil {
		return err
	}

	switch {
	case ctx.opts.jsonOutput:
		return writeJSON(cmd, result)
	case ctx.opts.quiet:
		return nil
	default:
		out := cmd.OutOrStdout()
		_, err := out.Write([]byte(renderSummary(result, shouldColorize(out)) + "\n"))
		return err
	}
}
