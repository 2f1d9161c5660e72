package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "npmparser"

// Config controls how npm is invoked.
type Config struct {
	// NPM is the npm executable, looked up in PATH when not absolute.
	NPM string
	// Dir is the project directory npm runs in; empty means the current one.
	Dir string
	// LaunchRetries is how often a failed launch of npm is retried.
	LaunchRetries uint64
	// LaunchBackoff is the initial wait between launch attempts.
	LaunchBackoff time.Duration
}

// Load reads configuration from cfgFile, when given, and from NPMPARSER_*
// environment variables, which take precedence. A .env file in the working
// directory is loaded into the environment first if present.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("npm", "npm")
	v.SetDefault("dir", "")
	v.SetDefault("launch-retries", 0)
	v.SetDefault("launch-backoff", 500*time.Millisecond)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", cfgFile)
		}
	}

	cfg := &Config{
		NPM:           v.GetString("npm"),
		Dir:           v.GetString("dir"),
		LaunchRetries: v.GetUint64("launch-retries"),
		LaunchBackoff: v.GetDuration("launch-backoff"),
	}
	if cfg.NPM == "" {
		return nil, errors.New("npm executable must not be empty")
	}
	return cfg, nil
}
