package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/malusev998/currency-history/api"
)

func serve(config *Config) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stored rate history over HTTP",
		Args:  cobra.NoArgs,
	}

	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.OutOrStdout(), *config.debug)
		defer func() { _ = logger.Sync() }()

		conversion, closeStorage, err := config.NewConversion()

		if err != nil {
			return err
		}

		defer closeStorage()

		router := mux.NewRouter()
		api.NewHandler(conversion, logger).RegisterRoutes(router)

		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := config.Ctx

		if ctx == nil {
			ctx = context.Background()
		}

		go func() {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = server.Shutdown(shutdownCtx)
		}()

		logger.Info("listening on " + addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")

	return serveCmd
}
