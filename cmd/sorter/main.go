// Package main contains the sorter CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/muliwe/go-package-sorter/internal/config"
	"github.com/muliwe/go-package-sorter/internal/logger"
)

// Exit codes
const (
	exitError        = 1
	exitInvalidInput = 2
)

// codedError carries a process exit code
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// app holds state shared by all commands
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	log     *zap.Logger

	closeLog func()
}

func newApp() *app {
	return &app{v: viper.New(), log: zap.NewNop(), closeLog: func() {}}
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func (a *app) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sorter",
		Short: "Route parcels to the standard, special or rejected stack",
		Long: `sorter classifies parcels by their dimensions (cm) and mass (kg).

A parcel is bulky when its volume reaches 1,000,000 cm3 or any side reaches
150 cm, and heavy when its mass reaches 20 kg. Bulky and heavy parcels are
rejected, bulky or heavy parcels need special handling, everything else is
standard.

Examples:
  sorter classify --width 70 --height 80 --length 90 --mass 5
  sorter classify --width 200 --height 100 --length 50 --mass 10 --output json
  sorter serve --addr :8080`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./sorter.yaml or $HOME/.config/sorter/sorter.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = a.v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(classifyCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, cleanup, err := logger.NewConsole(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.log = log
	a.closeLog = cleanup

	return nil
}

// shutdown flushes the console logger and releases its output
func (a *app) shutdown() {
	_ = a.log.Sync()
	a.closeLog()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp()
	err := a.command().ExecuteContext(ctx)
	a.shutdown()
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var coded *codedError
		if errors.As(err, &coded) {
			os.Exit(coded.code)
		}
		os.Exit(exitError)
	}
}
