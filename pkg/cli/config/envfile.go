package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultEnvFile is loaded when APPDESC_ENV_FILE is not set
const DefaultEnvFile = ".env"

// LoadEnvFile loads environment variables from a dotenv file before flags are
// parsed. Variables already set in the environment are kept. A missing
// default file is not an error, a missing explicit file is.
func LoadEnvFile() error {
	path, explicit := os.LookupEnv("APPDESC_ENV_FILE")
	if !explicit || path == "" {
		path = DefaultEnvFile
		explicit = false
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}

	return nil
}
