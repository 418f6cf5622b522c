// Package config loads sorter configuration from defaults, an optional YAML
// file and SORTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/muliwe/go-package-sorter/internal/logger"
	"github.com/muliwe/go-package-sorter/internal/server"
)

// EnvPrefix is prepended to every environment variable, e.g. SORTER_SERVER_ADDR
const EnvPrefix = "SORTER"

// Config is the main application configuration
type Config struct {
	Server      server.Config        `mapstructure:"server"`
	Logging     logger.ConsoleConfig `mapstructure:"logging"`
	DecisionLog logger.Config        `mapstructure:"decision_log"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server:      server.DefaultConfig(),
		Logging:     logger.DefaultConsoleConfig(),
		DecisionLog: logger.DefaultConfig(),
	}
}

// SetDefaults registers every key on v so environment overrides apply to all of them
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.enable_debug", d.Server.EnableDebug)
	v.SetDefault("server.enable_metrics", d.Server.EnableMetrics)
	v.SetDefault("server.tls_cert_file", d.Server.TLSCertFile)
	v.SetDefault("server.tls_key_file", d.Server.TLSKeyFile)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)

	v.SetDefault("decision_log.path", d.DecisionLog.Path)
	v.SetDefault("decision_log.stdout", d.DecisionLog.Stdout)
}

// Load reads configuration into a Config. An explicit file must exist; when
// file is empty sorter.yaml is looked up in the working directory and in
// $HOME/.config/sorter and may be absent.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("sorter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sorter"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
