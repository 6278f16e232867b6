package cli

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/onesky-appdesc/pkg/cli/config"
	"github.com/m-mizutani/onesky-appdesc/pkg/infra/storage"
	"github.com/m-mizutani/onesky-appdesc/pkg/usecase"
)

func cmdDownload() *cli.Command {
	var (
		oneskyCfg   config.OneSky
		downloadCfg config.Download
		fileCfg     config.File
	)

	flags := append(oneskyCfg.Flags(), downloadCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)

	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Download translations of the app description from OneSky in parallel",
		Description: "Writes name.txt, subtitle.txt, promotional_text.txt, description.txt, keywords.txt\n" +
			"and release_notes.txt under {destination-dir}/{locale}, the layout used by fastlane deliver.",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := fileCfg.Apply(&oneskyCfg, &downloadCfg); err != nil {
				return err
			}

			req := downloadCfg.Request(&oneskyCfg)
			if err := req.Validate(); err != nil {
				return err
			}

			logger := ctxlog.From(ctx).With(
				"run_id", uuid.NewString(),
				"project_id", req.ProjectID,
			)
			ctx = ctxlog.With(ctx, logger)

			logger.Info("Starting app description download",
				"locales", req.Locales,
				"destination", req.DestinationDir,
				"concurrency", req.Concurrency,
			)

			client, err := oneskyCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create OneSky client")
			}

			store, err := storage.New(ctx, req.DestinationDir, storage.Options{
				S3Region: downloadCfg.S3Region,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create metadata store")
			}
			if closer, ok := store.(io.Closer); ok {
				defer func() {
					if err := closer.Close(); err != nil {
						logger.Warn("Failed to close metadata store", "error", err)
					}
				}()
			}

			report, err := usecase.NewDownload(client, store).Download(ctx, req)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if w == nil {
				w = os.Stdout
			}
			printReport(w, report)

			logger.Info("Finished app description download",
				"succeeded", len(report.Succeeded()),
				"empty", len(report.Empty()),
				"failed", len(report.Failed()),
			)

			return report.Err()
		},
	}
}
