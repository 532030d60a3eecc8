package commands

import (
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the dashboard UI in the default browser",
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Str("url", cfg.DashboardURL).Msg("Opening dashboard")
		if err := browser.OpenURL(cfg.DashboardURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to open browser")
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
