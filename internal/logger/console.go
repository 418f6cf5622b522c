// Package logger provides the operational console logger and the
// classification decision log.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConsoleConfig contains operational logging configuration
type ConsoleConfig struct {
	// Level is the minimum log level
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`

	// Format is the output format (console, json)
	Format string `mapstructure:"format" validate:"oneof=console json"`

	// Output is the destination (stdout, stderr, file path)
	Output string `mapstructure:"output" validate:"required"`
}

// DefaultConsoleConfig returns sensible defaults
func DefaultConsoleConfig() ConsoleConfig {
	return ConsoleConfig{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// NewConsole builds the operational logger. The returned cleanup closes a
// file output and must be called once the logger is no longer used.
func NewConsole(cfg ConsoleConfig) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "console":
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	ws, cleanup, err := zap.Open(output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output %q: %w", output, err)
	}

	return zap.New(zapcore.NewCore(encoder, ws, level), zap.AddCaller()), cleanup, nil
}
