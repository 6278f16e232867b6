package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/onesky-appdesc/pkg/infra/onesky"
)

// OneSky holds OneSky API configuration
type OneSky struct {
	PublicKey string
	SecretKey string `masq:"secret"`
	ProjectID string
	BaseURL   string
	Timeout   time.Duration
}

// Flags returns CLI flags for OneSky configuration. Required values are
// checked by DownloadRequest.Validate so that they can come from a config file.
func (c *OneSky) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "public-key",
			Usage:       "Public key for OneSky",
			Destination: &c.PublicKey,
			Sources:     cli.EnvVars("ONESKY_PUBLIC_KEY"),
		},
		&cli.StringFlag{
			Name:        "secret-key",
			Usage:       "Secret key for OneSky",
			Destination: &c.SecretKey,
			Sources:     cli.EnvVars("ONESKY_SECRET_KEY"),
		},
		&cli.StringFlag{
			Name:        "project-id",
			Usage:       "OneSky project id to download translations from",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("ONESKY_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "onesky-base-url",
			Usage:       "OneSky API endpoint (default: " + onesky.DefaultBaseURL + ")",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("ONESKY_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:        "onesky-timeout",
			Usage:       "Timeout of each OneSky API request",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("ONESKY_TIMEOUT"),
		},
	}
}

// NewClient creates a OneSky client for the configured project
func (c *OneSky) NewClient() (*onesky.Client, error) {
	opts := []onesky.Option{
		onesky.WithTimeout(c.Timeout),
	}
	if c.BaseURL != "" {
		opts = append(opts, onesky.WithBaseURL(c.BaseURL))
	}

	return onesky.NewClient(c.PublicKey, c.SecretKey, c.ProjectID, opts...)
}
