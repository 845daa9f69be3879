package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/metalagman/maimp/internal/app"
	"github.com/metalagman/maimp/internal/db"
	"github.com/metalagman/maimp/internal/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.UI.Addr = addr
			}

			var store *db.Store
			stop, err := app.Start(cmd.Context(), cfg, cmd.OutOrStdout(), &store)
			if err != nil {
				return err
			}
			defer stop()

			server, err := web.NewServer(store)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              cfg.UI.Addr,
				Handler:           server.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Starting UI on http://localhost%s\n", cfg.UI.Addr)
			log.Info().Str("addr", cfg.UI.Addr).Msg("ui listening")
			return serve(cmd.Context(), srv)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides ui.addr)")
	return cmd
}

// serve runs srv until ctx is done or the listener fails, then shuts it down.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown ui: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
