package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/onesky-appdesc/pkg/cli/config"
	"github.com/m-mizutani/onesky-appdesc/pkg/domain/types"
)

// Run runs the CLI application. It returns an error when the arguments are
// invalid or when at least one locale failed to download.
func Run(ctx context.Context, args []string) error {
	// flags read environment variables, so .env goes first
	if err := config.LoadEnvFile(); err != nil {
		slog.Default().Error("Failed to load env file", slog.Any("error", err))
		return err
	}

	var loggerCfg config.Logger
	logger := slog.Default()

	app := &cli.Command{
		Name:    types.AppName,
		Usage:   "Download App Store metadata translations from OneSky",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			configured, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			logger = configured.With("version", types.Version)
			slog.SetDefault(logger)
			return ctxlog.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			cmdDownload(),
			cmdFields(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logger.Error("Command failed", slog.Any("error", err))
		return err
	}
	return nil
}
