package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/malusev998/currency-history"
	"github.com/malusev998/currency-history/cli/cmd"
	"github.com/malusev998/currency-history/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	setDefaults()

	config := &cmd.Config{
		Ctx: ctx,
		NewService: func(logger *zap.Logger) (currency.Service, func() error, error) {
			c, err := getConfig(ctx)

			if err != nil {
				return nil, nil, err
			}

			return createCurrencyService(c, logger)
		},
		NewConversion: func() (*services.ConversionService, func() error, error) {
			c, err := getConfig(ctx)

			if err != nil {
				return nil, nil, err
			}

			return createConversionService(c)
		},
	}

	err := cmd.Execute(config)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
