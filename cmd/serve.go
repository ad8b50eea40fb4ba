package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
	"github.com/emcdo411/greenland-ree-dashboard/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		t, err := loadTable(ctx)
		if err != nil {
			return err
		}

		var presets scenario.Presets
		if cfg.Scenario.PresetsFile != "" {
			if presets, err = loadPresets(); err != nil {
				return err
			}
			zap.L().Info("loaded scenario presets", zap.Strings("presets", presets.Names()))
		}

		srv := server.New(t, serverOptions(presets))
		return srv.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
	},
}

func serverOptions(presets scenario.Presets) server.Options {
	return server.Options{
		InvestmentCap:  cfg.Scenario.InvestmentCap,
		TopMovers:      cfg.Scenario.TopMovers,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		CORSOrigins:    cfg.Server.CORSOrigins,
		CacheTTL:       time.Duration(cfg.Server.CacheTTLSecs) * time.Second,
		FilePrefix:     cfg.Export.FilePrefix,
		Presets:        presets,
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
