package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	Long: `Write the resolved configuration to the config file so it can be
edited by hand. Flags and environment overrides are baked into the file.

Examples:
  naxum config init
  naxum config init --api-url https://api.naxum.example/api`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, _ := cmd.Flags().GetString("home")

		cfg, err := config.Load(home)
		if err != nil {
			return err
		}
		if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
			cfg.APIURL = apiURL
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.LogLevel = level
		}

		if err := cfg.Save(); err != nil {
			return err
		}

		fmt.Printf("Wrote %s/config.yaml\n", cfg.Home)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, _ := cmd.Flags().GetString("home")

		cfg, err := config.Load(home)
		if err != nil {
			return err
		}

		fmt.Printf("api_url:         %s\n", cfg.APIURL)
		fmt.Printf("log_level:       %s\n", cfg.LogLevel)
		fmt.Printf("cache_ttl:       %s\n", cfg.CacheTTL)
		fmt.Printf("request_timeout: %s\n", cfg.RequestTimeout)
		fmt.Printf("home:            %s\n", cfg.Home)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
