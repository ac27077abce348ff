package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig mirrors Config for environment decoding.
//
// Environment variables:
//
//	CONTENTSCAN_RECORDS_FILE  - JSON array of records to scan
//	CONTENTSCAN_VISIBILITIES  - comma separated: published,draft,deleted
//	CONTENTSCAN_DRY_RUN       - log instead of processing
//	CONTENTSCAN_STOP_ON_ERROR - stop at the first failed record
//	CONTENTSCAN_LOG_LEVEL     - debug, info, warn, error
type envConfig struct {
	RecordsFile  string   `env:"CONTENTSCAN_RECORDS_FILE" env-description:"JSON array of records to scan"`
	Visibilities []string `env:"CONTENTSCAN_VISIBILITIES" env-separator:"," env-description:"visibilities to scan"`
	DryRun       bool     `env:"CONTENTSCAN_DRY_RUN" env-description:"log instead of processing"`
	StopOnError  bool     `env:"CONTENTSCAN_STOP_ON_ERROR" env-description:"stop at the first failed record"`
	LogLevel     string   `env:"CONTENTSCAN_LOG_LEVEL" env-description:"debug, info, warn or error"`
}

// WithEnv applies environment variable overrides. Variables that are not set
// leave the current value alone.
func WithEnv() Option {
	return func(c *Config) error {
		env := envConfig{
			RecordsFile: c.RecordsFile,
			DryRun:      c.DryRun,
			StopOnError: c.StopOnError,
			LogLevel:    c.LogLevel,
		}
		for _, v := range c.Visibilities {
			env.Visibilities = append(env.Visibilities, v.String())
		}

		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		visibilities, err := parseVisibilities(env.Visibilities)
		if err != nil {
			return err
		}

		c.RecordsFile = env.RecordsFile
		c.Visibilities = visibilities
		c.DryRun = env.DryRun
		c.StopOnError = env.StopOnError
		c.LogLevel = env.LogLevel
		return nil
	}
}

// Description returns the help text for the environment variables.
func Description() (string, error) {
	return cleanenv.GetDescription(&envConfig{}, nil)
}
