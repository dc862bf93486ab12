package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhrncar/wattdash/pkg/config"
	"github.com/jhrncar/wattdash/pkg/pathing"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wattdash",
	Short: "Energy consumption dashboard backend",
	Long: `Wattdash serves sampled instantaneous power readings and per-period
consumption totals from a plant energy database.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", pathing.GetDefaultConfigPath(), "config file")
}

func loadConfig() (*config.DashboardConfig, error) {
	return config.Load(cfgFile)
}
