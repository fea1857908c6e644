// Package cmd implements the alfred CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🎩"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "alfred",
	Short: logo + " alfred — project materialization & assignment",
	Long:  logo + " alfred — materialize project templates into the tracker and rank assignees by skill and availability",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(materializeCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
}
