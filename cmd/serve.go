package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/tabloom-cli/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the current dataset and dashboard as JSON over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		opt, err := decodeOptions("", "")
		if err != nil {
			return err
		}
		addr := serveAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}
		srv := server.New(st, server.Config{
			Dashboard:   dashboardOptions(),
			Decode:      opt,
			MaxUploadMB: cfg.MaxUploadMB,
		}, logger)

		httpSrv := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", addr, "data_dir", cfg.DataDir)
			errCh <- httpSrv.ListenAndServe()
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving on http://%s (Ctrl+C to stop)\n", addr)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config listen_addr)")
}
