package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retentionai/retention-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "retention-cli",
	Short: "Workforce attrition decision-support backend",
	Long:  "Scores employee attrition risk and business impact, ranks retention priorities, explains risk drivers, simulates retention interventions, and answers questions about the workforce via an LLM.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
