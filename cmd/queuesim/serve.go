package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"queuesim/internal/runner"
	"queuesim/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation API and run stream over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			a.logger.Info().Int("runs", len(store.History())).Str("path", store.Path()).Msg("loaded run history")

			hub := server.NewHub()
			run := runner.New(a.logger, runner.WithStore(store), runner.WithPublisher(hub))
			srv := server.New(a.cfg, store, run, hub, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					a.logger.Error().Err(err).Msg("server shutdown")
				}
			}()

			a.logger.Info().Str("addr", a.cfg.Addr).Msg("queuesim listening")
			if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address for the web server")
	return cmd
}
