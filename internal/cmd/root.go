// Package cmd implements the naxum command line interface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "naxum",
	Short: "Team task management from the command line",
	Long: `naxum is the command line client for the Naxum team platform.
It manages your session, tasks, team roster, and invitations against the
Naxum API, caching query results locally so repeated reads stay fast.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("home", "", "config directory (default is $HOME/.naxum)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides config and NAXUM_API_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}
