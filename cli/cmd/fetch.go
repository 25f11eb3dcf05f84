package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func handleRatesSave(config *Config, logger *zap.Logger) error {
	service, closeStorages, err := config.NewService(logger)

	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorages(); err != nil {
			logger.Warn("closing storages", zap.Error(err))
		}
	}()

	result, err := service.Save()

	if err != nil {
		return err
	}

	logger.Debug("rates saved",
		zap.Int("totalMonths", result.TotalMonths),
		zap.Int("currencies", len(result.Rates)),
		zap.Strings("removed", result.Removed),
	)

	return nil
}

func fetch(config *Config) *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Collect monthly rates since 2000-01 and store the complete histories",
		Args:  cobra.NoArgs,
		// failures are reported through errLogger below
		SilenceErrors: true,
	}

	fetchCmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.OutOrStdout(), *config.debug)
		errLogger := newLogger(cmd.ErrOrStderr(), *config.debug)
		defer func() {
			_ = logger.Sync()
			_ = errLogger.Sync()
		}()

		if err := handleRatesSave(config, logger); err != nil {
			errLogger.Sugar().Errorf("ERROR: %v", err)
			return err
		}

		return nil
	}

	return fetchCmd
}
