package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"runway-dss/internal/config"
	"runway-dss/internal/engine"
	"runway-dss/internal/logging"
	"runway-dss/internal/mcp"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	engineClient engine.Client
)

var rootCmd = &cobra.Command{
	Use:   "runway-dss",
	Short: "Runway-DSS is a Monte-Carlo decision-support server for business runway planning",
	Long: `An MCP server that maps business assumptions to stochastic simulation
specifications, submits them to an external Monte-Carlo engine, and shapes the
results into dashboard views (trajectories, sensitivity tornado, metric status
bands, and failure narratives).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Initialize engine client
		engineClient = engine.NewClient(cfg.Engine)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Runway-DSS starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		probeEngine()

		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(engineClient, cfg.EnableMermaidCharts)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Stdio loop terminated")
		}
	},
}

// probeEngine checks engine reachability at startup. A dead engine is only a
// warning here; the first run_simulation call surfaces the real error to the
// client.
func probeEngine() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := engineClient.Health(ctx); err != nil {
		log.Warn().Err(err).Str("url", cfg.Engine.BaseURL).Msg("Simulation engine unreachable at startup")
		return
	}
	log.Info().Str("url", cfg.Engine.BaseURL).Msg("Simulation engine reachable")
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
