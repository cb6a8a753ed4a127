package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

const (
	Development = "development"
	Staging     = "staging"
	Production  = "production"
)

// Configuration holds the mining job settings. Flag values are the defaults;
// PATTERNMINE_* environment variables override them.
type Configuration struct {
	AppName      string `ignored:"true"`
	Env          string `envconfig:"ENV"`
	BucketName   string `envconfig:"BUCKET_NAME"`
	SupportCount int    `envconfig:"SUPPORT_COUNT"`
	NumRoutines  int    `envconfig:"NUM_ROUTINES"`
	DumpTree     bool   `envconfig:"DUMP_TREE"`
}

var configuration *Configuration

// InitConf applies environment overrides, validates the configuration and
// sets up logging.
func InitConf(config *Configuration) error {
	if err := envconfig.Process("patternmine", config); err != nil {
		return err
	}

	if config.Env != Development &&
		config.Env != Staging &&
		config.Env != Production {
		return fmt.Errorf("env [ %s ] not recognised", config.Env)
	}
	if config.SupportCount <= 0 {
		return fmt.Errorf("support count should be positive, got %d", config.SupportCount)
	}
	if config.NumRoutines < 1 {
		return fmt.Errorf("num routines should be at least one, got %d", config.NumRoutines)
	}

	configuration = config
	initLogging()
	return nil
}

func initLogging() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}
}

func GetConfig() *Configuration {
	return configuration
}

func IsDevelopment() bool {
	return configuration != nil && configuration.Env == Development
}
