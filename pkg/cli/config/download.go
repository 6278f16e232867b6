package config

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/model"
)

// Download holds download target configuration
type Download struct {
	Locales        []string
	DestinationDir string
	Concurrency    int
	S3Region       string
}

// Flags returns CLI flags for download configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "locale",
			Aliases:     []string{"l"},
			Usage:       "Locale to download the translation for (repeatable, comma separated)",
			Destination: &c.Locales,
			Sources:     cli.EnvVars("ONESKY_DOWNLOAD_LOCALE"),
		},
		&cli.StringFlag{
			Name:        "destination-dir",
			Aliases:     []string{"d"},
			Usage:       "Destination directory to put the downloaded files to (path, gs://bucket/prefix or s3://bucket/prefix)",
			Destination: &c.DestinationDir,
			Sources:     cli.EnvVars("ONESKY_DOWNLOAD_DESTINATION_DIR"),
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum number of locales downloaded at once, 0 for one per locale",
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("ONESKY_DOWNLOAD_CONCURRENCY"),
		},
		&cli.StringFlag{
			Name:        "s3-region",
			Usage:       "AWS region of an s3:// destination",
			Destination: &c.S3Region,
			Sources:     cli.EnvVars("AWS_REGION"),
		},
	}
}

// Request builds the download request. Locales are trimmed so that
// "en-US, ja" works; the request is not validated here.
func (c *Download) Request(sky *OneSky) *model.DownloadRequest {
	locales := make([]string, len(c.Locales))
	for i, locale := range c.Locales {
		locales[i] = strings.TrimSpace(locale)
	}

	return &model.DownloadRequest{
		PublicKey:      sky.PublicKey,
		SecretKey:      sky.SecretKey,
		ProjectID:      sky.ProjectID,
		Locales:        locales,
		DestinationDir: c.DestinationDir,
		Concurrency:    c.Concurrency,
	}
}
