package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/claimwise/claimwise/internal/pipeline"
	"github.com/claimwise/claimwise/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP claim processing service",
	Long: `Start an HTTP server exposing claim processing:

  GET  /health         liveness check
  POST /process-claim  multipart upload ("file"), returns claim, verdict, and report`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: config server.addr, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	store, err := loadPolicyStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("load policies: %w", err)
	}
	log.WithField("policies", store.Len()).Info("policy store loaded")

	p := pipeline.NewPipeline(cfg, store)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(p).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
