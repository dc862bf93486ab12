package cmd

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhrncar/wattdash/pkg/dashdb"
	"github.com/jhrncar/wattdash/pkg/timeframe"
)

var (
	seedStart    string
	seedDays     int
	seedInterval int
)

// Per-channel value bands for ACTUAL and daily increment bands for TOTAL,
// both in dashdb.ChannelColumns order.
var (
	actualBands = [][2]float64{
		{50, 150}, {50, 150}, {50, 150},
		{30, 100}, {30, 100}, {30, 100},
		{200, 300}, {100, 200}, {150, 250},
	}
	totalIncrements = [][2]float64{
		{1000, 2000}, {1000, 2000}, {1000, 2000},
		{800, 1500}, {800, 1500}, {800, 1500},
		{500, 1000}, {300, 800}, {400, 900},
	}
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample meter data",
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

		start, err := time.ParseInLocation(timeframe.DateLayout, seedStart, time.UTC)
		if err != nil {
			return fmt.Errorf("bad start date: %w", err)
		}
		if err := seedActual(db, start, seedDays, seedInterval); err != nil {
			return err
		}
		return seedTotal(db, start, seedDays)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedStart, "start", "s", "2024-01-01", "start date (YYYY-MM-DD)")
	seedCmd.Flags().IntVarP(&seedDays, "days", "n", 3, "days of data to generate")
	seedCmd.Flags().IntVarP(&seedInterval, "interval", "i", 60, "ACTUAL sampling interval in minutes")
	rootCmd.AddCommand(seedCmd)
}

// seedActual writes one ACTUAL row every interval minutes.
func seedActual(db *dashdb.DashDB, start time.Time, days, intervalMin int) error {
	interval := time.Duration(intervalMin) * time.Minute
	end := start.AddDate(0, 0, days).Add(-interval)

	count := 0
	for t := start; !t.After(end); t = t.Add(interval) {
		vals := make([]float64, len(dashdb.ChannelColumns))
		for i, b := range actualBands {
			vals[i] = b[0] + rand.Float64()*(b[1]-b[0])
		}
		if err := db.InsertActualRow(&dashdb.MeterRow{Timestamp: t.Unix(), Values: vals}); err != nil {
			return err
		}
		count++
	}
	log.Printf("Populated ACTUAL with %d rows", count)
	return nil
}

// seedTotal writes one cumulative TOTAL row per day at UTC midnight; every
// counter only ever increases.
func seedTotal(db *dashdb.DashDB, start time.Time, days int) error {
	standings := make([]float64, len(dashdb.ChannelColumns))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		for c, b := range totalIncrements {
			standings[c] += b[0] + rand.Float64()*(b[1]-b[0])
		}
		row := &dashdb.MeterRow{Timestamp: day.Unix(), Values: append([]float64(nil), standings...)}
		if err := db.InsertTotalRow(row); err != nil {
			return err
		}
	}
	log.Printf("Populated TOTAL with %d cumulative rows", days)
	return nil
}
