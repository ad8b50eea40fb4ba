package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/config"
)

var (
	cfg      *config.Config
	dataFile string
)

var rootCmd = &cobra.Command{
	Use:   "ree",
	Short: "Greenland rare-earth deposit dashboard",
	Long:  "Ranks Greenland rare-earth deposits, runs policy scenarios against the strategic scores, and serves the results as tables, exports and a JSON API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return eris.Wrap(err, "load .env")
		}

		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if dataFile != "" {
			c.Data.File = dataFile
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return cfg.Validate("")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "deposit table to use instead of the bundled baseline (.csv, .tsv or .xlsx)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
