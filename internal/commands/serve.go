package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/deepfinance-dev/deepfinance/internal/config"
	"github.com/deepfinance-dev/deepfinance/internal/logger"
	"github.com/deepfinance-dev/deepfinance/internal/server"
	"github.com/deepfinance-dev/deepfinance/internal/store"
)

func newServeCommand() *cobra.Command {
	var configPath string
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local overrides; absence is fine.
			_ = godotenv.Load()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			log := logger.New()
			svc := server.NewService(store.New(cfg.Data.Dir), cfg, log)

			log.Info().Str("listen", cfg.Server.Listen).Str("data_dir", cfg.Data.Dir).Msg("starting server")
			return svc.Router().Run(cfg.Server.Listen)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "deepfinance.yaml", "path to config file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}
