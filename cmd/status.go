package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhrncar/wattdash/pkg/dashdb"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored data ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := dashdb.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		ranges, err := db.DataRange()
		if err != nil {
			return fmt.Errorf("reading data range: %w", err)
		}

		for _, table := range []string{"ACTUAL", "TOTAL"} {
			r := ranges[table]
			if r.MinTime == nil || r.MaxTime == nil {
				fmt.Printf("%s: empty\n", table)
				continue
			}
			fmt.Printf("%s: %s .. %s\n", table, *r.MinTime, *r.MaxTime)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
