package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// File holds the path of an optional TOML or YAML configuration file.
// Values from flags and environment variables take precedence over it.
type File struct {
	Path string
}

// fileContent is the layout of the configuration file
type fileContent struct {
	OneSky struct {
		PublicKey string `toml:"public_key" yaml:"public_key"`
		SecretKey string `toml:"secret_key" yaml:"secret_key" masq:"secret"`
		ProjectID string `toml:"project_id" yaml:"project_id"`
		BaseURL   string `toml:"base_url" yaml:"base_url"`
	} `toml:"onesky" yaml:"onesky"`

	Download struct {
		Locales        []string `toml:"locales" yaml:"locales"`
		DestinationDir string   `toml:"destination_dir" yaml:"destination_dir"`
		Concurrency    int      `toml:"concurrency" yaml:"concurrency"`
		S3Region       string   `toml:"s3_region" yaml:"s3_region"`
	} `toml:"download" yaml:"download"`
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML or YAML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("APPDESC_CONFIG"),
		},
	}
}

// Apply fills empty fields of sky and dl from the configuration file. It does
// nothing when no file is configured.
func (c *File) Apply(sky *OneSky, dl *Download) error {
	if c.Path == "" {
		return nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var content fileContent
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".toml":
		err = toml.Unmarshal(data, &content)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &content)
	default:
		return goerr.New("unsupported config file extension, use .toml, .yaml or .yml",
			goerr.V("path", c.Path))
	}
	if err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}

	setIfEmpty(&sky.PublicKey, content.OneSky.PublicKey)
	setIfEmpty(&sky.SecretKey, content.OneSky.SecretKey)
	setIfEmpty(&sky.ProjectID, content.OneSky.ProjectID)
	setIfEmpty(&sky.BaseURL, content.OneSky.BaseURL)

	if len(dl.Locales) == 0 {
		dl.Locales = content.Download.Locales
	}
	setIfEmpty(&dl.DestinationDir, content.Download.DestinationDir)
	setIfEmpty(&dl.S3Region, content.Download.S3Region)
	if dl.Concurrency == 0 {
		dl.Concurrency = content.Download.Concurrency
	}

	return nil
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
