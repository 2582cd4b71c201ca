// Serve command for the tabula CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabula-app/tabula/internal/httpserver"
	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/internal/transfer"
	"github.com/tabula-app/tabula/internal/views"
)

var flagListenAddr string

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "", "listen address (default: config listen_addr)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tabula API server",
	Long:  "Attach the store and serve the HTTP API until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		backend, cfg, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "serve:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		addr := flagListenAddr
		if addr == "" {
			addr = config.listenAddr()
		}

		srv := httpserver.New(addr, httpserver.Deps{
			Logger:      log,
			Store:       backend,
			StoreConfig: cfg,
			Views:       views.New(backend),
			Transfer:    transfer.New(backend, log),
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Error("server error", logger.Error(err))
				os.Exit(exitSysError)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error("shutdown error", logger.Error(err))
				os.Exit(exitSysError)
			}
		}

		return nil
	},
}
