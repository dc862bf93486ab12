package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhrncar/wattdash/pkg/consumption"
	"github.com/jhrncar/wattdash/pkg/dashdb"
	"github.com/jhrncar/wattdash/pkg/sampler"
	"github.com/jhrncar/wattdash/pkg/timeframe"
	"github.com/jhrncar/wattdash/pkg/variables"
)

// Machine-readable request outcomes. The UI layer branches on these instead
// of parsing the info text.
const (
	StatusOK          = "ok"
	StatusNoSelection = "no_selection"
	StatusNoColumns   = "no_columns"
	StatusNoData      = "no_data"
	StatusBadTime     = "bad_time"
	StatusBadVariable = "bad_variable"
	StatusConversion  = "conversion_error"
	StatusQueryError  = "query_error"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard JSON API server",
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

		port := cfg.ListenPort
		if servePort != 0 {
			port = servePort
		}
		addr := fmt.Sprintf("%s:%d", cfg.ListenAddress, port)

		log.Printf("Starting wattdash API on %s", addr)
		return http.ListenAndServe(addr, newServeMux(db))
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func newServeMux(db *dashdb.DashDB) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Wattdash Dashboard API",
			"status":  "running",
		})
	})

	mux.HandleFunc("/range", func(w http.ResponseWriter, r *http.Request) {
		ranges, err := db.DataRange()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status": StatusQueryError,
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, ranges)
	})

	mux.HandleFunc("/periods", handlePeriods(db))
	mux.HandleFunc("/actual", handleActual(db))
	mux.HandleFunc("/total", handleTotal(db))
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// handlePeriods lists the selectable year/month/week/day values for one
// table's data range, for populating the period dropdowns.
func handlePeriods(db *dashdb.DashDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := strings.ToUpper(r.URL.Query().Get("table"))
		if table == "" {
			table = "ACTUAL"
		}

		ranges, err := db.DataRange()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status": StatusQueryError,
				"error":  err.Error(),
			})
			return
		}
		tr, ok := ranges[table]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"status": StatusQueryError,
				"error":  "unknown table " + table,
			})
			return
		}
		writeJSON(w, http.StatusOK, timeframe.PeriodOptions(datePart(tr.MinTime), datePart(tr.MaxTime)))
	}
}

type actualResponse struct {
	Status string                 `json:"status"`
	Info   string                 `json:"info"`
	Step   int                    `json:"step,omitempty"`
	Points []sampler.SampledPoint `json:"points,omitempty"`
}

// handleActual serves the sampled instantaneous series for the chosen
// period and display variables.
func handleActual(db *dashdb.DashDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		startDate, endDate, err := timeframe.Resolve(q.Get("unit"), q.Get("value"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, actualResponse{Status: StatusBadTime, Info: err.Error()})
			return
		}
		if startDate == "" || endDate == "" {
			writeJSON(w, http.StatusOK, actualResponse{Status: StatusNoSelection, Info: "no date selected"})
			return
		}

		step, err := timeframe.SamplingStep(startDate, endDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, actualResponse{Status: StatusBadTime, Info: err.Error()})
			return
		}

		info := fmt.Sprintf("data from %s to %s", startDate, endDate)
		displayVars := splitVars(q.Get("vars"))
		if len(displayVars) == 0 {
			writeJSON(w, http.StatusOK, actualResponse{Status: StatusNoColumns, Info: info + " - no columns selected"})
			return
		}

		cols := variables.BuildColumnList(displayVars)
		for _, col := range cols {
			if !dashdb.IsChannel(col) {
				writeJSON(w, http.StatusBadRequest, actualResponse{
					Status: StatusBadVariable,
					Info:   "unknown variable " + col,
				})
				return
			}
		}
		points, err := sampler.Sample(db, startDate+" 00:00:00", endDate+" 23:59:59", cols, step)
		if err != nil {
			status, code := classifyError(err)
			writeJSON(w, code, actualResponse{Status: status, Info: err.Error()})
			return
		}
		if len(points) == 0 {
			writeJSON(w, http.StatusOK, actualResponse{Status: StatusNoData, Info: info + " - no data in range"})
			return
		}

		info += fmt.Sprintf(" | columns: %s | density 1/%d", strings.Join(displayVars, ", "), step)
		writeJSON(w, http.StatusOK, actualResponse{
			Status: StatusOK,
			Info:   info,
			Step:   step,
			Points: points,
		})
	}
}

type totalResponse struct {
	Status  string                    `json:"status"`
	Info    string                    `json:"info"`
	BarMode string                    `json:"bar_mode,omitempty"`
	Records []consumption.DeltaRecord `json:"records,omitempty"`
}

// handleTotal serves per-period consumption deltas for the chosen period
// and aggregation bucket.
func handleTotal(db *dashdb.DashDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		startDate, endDate, err := timeframe.Resolve(q.Get("unit"), q.Get("value"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, totalResponse{Status: StatusBadTime, Info: err.Error()})
			return
		}
		if startDate == "" || endDate == "" {
			writeJSON(w, http.StatusOK, totalResponse{Status: StatusNoSelection, Info: "no date selected"})
			return
		}

		bucket := consumption.Bucket(q.Get("bucket"))
		if bucket == "" {
			bucket = consumption.BucketWeek
		}
		barMode := q.Get("barmode")
		if barMode == "" {
			barMode = "stack"
		}

		result, err := consumption.Aggregate(db, startDate+" 00:00:00", endDate+" 23:59:59", bucket, barMode)
		if err != nil {
			status, code := classifyError(err)
			writeJSON(w, code, totalResponse{Status: status, Info: err.Error()})
			return
		}

		info := fmt.Sprintf("data from %s to %s", startDate, endDate)
		if len(result.Records) == 0 {
			writeJSON(w, http.StatusOK, totalResponse{Status: StatusNoData, Info: info + " - no data in range"})
			return
		}
		writeJSON(w, http.StatusOK, totalResponse{
			Status:  StatusOK,
			Info:    info,
			BarMode: result.BarMode,
			Records: result.Records,
		})
	}
}

func classifyError(err error) (string, int) {
	switch {
	case errors.Is(err, timeframe.ErrBadTimestamp):
		return StatusBadTime, http.StatusBadRequest
	case errors.Is(err, consumption.ErrTimeConversion):
		return StatusConversion, http.StatusInternalServerError
	default:
		return StatusQueryError, http.StatusInternalServerError
	}
}

func splitVars(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func datePart(ts *string) string {
	if ts == nil {
		return ""
	}
	return strings.SplitN(*ts, " ", 2)[0]
}
