package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sajjad-MoBe/fetchprobe/client"
	"github.com/sajjad-MoBe/fetchprobe/internal/report"
)

var (
	fetchTimeout time.Duration
	fetchRetries int
	fetchPretty  bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url> [url...]",
	Short: "Fetch one or more URLs and report each outcome",
	Args:  cobra.MinimumNArgs(1),
	Run:   runFetch,
}

func init() {
	fetchCmd.Flags().DurationVarP(&fetchTimeout, "timeout", "t", 30*time.Second, "Timeout for each retrieval")
	fetchCmd.Flags().IntVarP(&fetchRetries, "retries", "r", 0, "Retries per URL for transient failures (default: none)")
	fetchCmd.Flags().BoolVar(&fetchPretty, "pretty", false, "Human-readable console output instead of JSON logs")
}

func runFetch(cmd *cobra.Command, args []string) {
	config := client.DefaultConfig()
	config.Timeout = fetchTimeout
	config.MaxRetries = fetchRetries
	c := client.New(config)

	var out io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr
	if fetchPretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
		errOut = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	reporter := report.NewLogReporter(out, errOut)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed := false
	for _, res := range c.FetchAll(ctx, args) {
		reporter.Report(res.URL, res.Outcome)
		if !res.Outcome.IsSuccess() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
