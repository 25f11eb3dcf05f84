package cmd

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/services"
)

var (
	rootCmd = &cobra.Command{
		Use:          "currency-history",
		Short:        "Monthly USD exchange rate history collector",
		Version:      "v2.0.0",
		SilenceUsage: true,
	}
	debug      bool
	configFile string
)

type (
	// ServiceFactory builds the pipeline and returns a func releasing its storages.
	ServiceFactory    func(logger *zap.Logger) (currency.Service, func() error, error)
	ConversionFactory func() (*services.ConversionService, func() error, error)

	Config struct {
		Ctx           context.Context
		NewService    ServiceFactory
		NewConversion ConversionFactory
		debug         *bool
	}
)

func readConfig(*cobra.Command, []string) error {
	absolutePath, err := filepath.Abs(configFile)

	if err != nil {
		return err
	}

	viper.SetConfigFile(absolutePath)
	viper.SetEnvPrefix("CURRENCY_HISTORY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func Execute(config *Config) error {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./config.yml", "Path to config file")
	rootCmd.PersistentPreRunE = readConfig

	config.debug = &debug

	rootCmd.AddCommand(fetch(config), convert(config), serve(config))

	return rootCmd.Execute()
}
