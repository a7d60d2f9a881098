package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved configuration: defaults, then the config file,
// then QDECK_* environment variables, then flags.
type Config struct {
	Format    string  `mapstructure:"format"`
	Precision int     `mapstructure:"precision"`
	Theta     string  `mapstructure:"theta"`
	Compact   bool    `mapstructure:"compact"`
	Verbose   bool    `mapstructure:"verbose"`
	SavePath  string  `mapstructure:"save-path"`
	Tolerance float64 `mapstructure:"tolerance"`

	// ThetaValue is Theta parsed by loadConfig.
	ThetaValue float64 `mapstructure:"-"`
}

// maxPrecision caps printed decimals; float64 carries ~15-17 significant digits.
const maxPrecision = 15

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("format", FormatText)
	v.SetDefault("precision", 4)
	v.SetDefault("theta", "pi/4")
	v.SetDefault("compact", false)
	v.SetDefault("verbose", false)
	v.SetDefault("save-path", "circuit.qasm")
	v.SetDefault("tolerance", DefaultTolerance)
}

// readConfig points v at the config file and environment. An explicit
// cfgFile must exist; the default $HOME/.qdeck-sim.yaml is optional.
func readConfig(v *viper.Viper, cfgFile string) error {
	setConfigDefaults(v)
	v.SetEnvPrefix("QDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		slog.Debug("using config file", "file", v.ConfigFileUsed())
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		slog.Debug("no home directory, skipping config file", "error", err)
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".qdeck-sim")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}
	slog.Debug("using config file", "file", v.ConfigFileUsed())
	return nil
}

// loadConfig decodes and validates the configuration held by v.
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Precision < 0 || cfg.Precision > maxPrecision {
		return Config{}, fmt.Errorf("precision %d out of range [0, %d]", cfg.Precision, maxPrecision)
	}
	if _, err := RendererFor(cfg.Format, cfg.Precision); err != nil {
		return Config{}, err
	}
	if !(cfg.Tolerance > 0 && cfg.Tolerance < 1) {
		return Config{}, fmt.Errorf("tolerance %g out of range (0, 1)", cfg.Tolerance)
	}
	theta, err := ParseAngle(cfg.Theta)
	if err != nil {
		return Config{}, fmt.Errorf("theta: %w", err)
	}
	cfg.ThetaValue = theta
	return cfg, nil
}
