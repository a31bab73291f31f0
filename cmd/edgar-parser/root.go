package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/config"
	"github.com/saranrapjs/edgar-parser/pkg/logger"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "edgar-parser",
	Short: "Decode SEC EDGAR XML filings",
	Long: `Decodes XBRL instance documents, 13F holdings reports and
Forms 3, 4 and 5 ownership reports into JSON.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log, err = logger.New(cfg.LogLevel, cfg.LogDevelopment)
	return err
}
