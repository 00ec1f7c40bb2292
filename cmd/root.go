package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fetchprobe",
	Short: "Fetch remote JSON documents and report the outcome",
	Long: `fetchprobe retrieves documents over HTTP, validates the transport
outcome, parses the body as structured data, and reports either the
parsed value or a descriptive failure.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("couldn't execute app,", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
}
