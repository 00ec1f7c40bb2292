package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sajjad-MoBe/fetchprobe/client"
	"github.com/sajjad-MoBe/fetchprobe/internal/api"
	"github.com/sajjad-MoBe/fetchprobe/internal/report"
)

var (
	serveAddress   string
	serveTimeout   time.Duration
	serveRetries   int
	jaegerEndpoint string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the probe API server",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", ":8090", "Address for the probe server to listen on")
	serveCmd.Flags().DurationVarP(&serveTimeout, "timeout", "t", 30*time.Second, "Timeout for each retrieval")
	serveCmd.Flags().IntVarP(&serveRetries, "retries", "r", 0, "Retries per probe for transient failures (default: none)")
	serveCmd.Flags().StringVar(&jaegerEndpoint, "jaeger-endpoint", "", "Jaeger collector endpoint; tracing is off when empty")
}

func runServe(cmd *cobra.Command, args []string) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	config := client.DefaultConfig()
	config.Timeout = serveTimeout
	config.MaxRetries = serveRetries
	fetcher := client.New(config)

	var tracer *api.Tracer
	if jaegerEndpoint != "" {
		var err error
		tracer, err = api.NewTracer("fetchprobe", jaegerEndpoint)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to set up tracing")
		}
	}

	metrics := api.NewMetrics()
	reporter := report.NewLogReporter(os.Stdout, os.Stderr)
	handler := api.NewHandler(fetcher, reporter, metrics, tracer)
	srv := api.NewServer(serveAddress, api.Router(handler, metrics, logger), logger)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("initiating shutdown")
	case <-ctx.Done():
		logger.Info().Msg("shutting down due to error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
	if tracer != nil {
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("error shutting down tracer")
		}
	}
}
