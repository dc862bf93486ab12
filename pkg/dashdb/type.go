package dashdb

// ChannelColumns is the closed set of channel columns present on both the
// ACTUAL and TOTAL tables, in schema order. Every column name used to build
// a query must come from this list; nothing user-supplied ever reaches SQL
// as an identifier.
var ChannelColumns = []string{
	"U_IN", "V_IN", "W_IN",
	"U_OUT", "V_OUT", "W_OUT",
	"ATLAS", "BUPI", "RENDER",
}

// TotalChannels are the TOTAL table columns the consumption aggregator
// consumes.
var TotalChannels = []string{"U_IN", "V_IN", "W_IN", "ATLAS", "BUPI", "RENDER"}

// IsChannel reports whether name is one of the known channel columns.
func IsChannel(name string) bool {
	for _, c := range ChannelColumns {
		if c == name {
			return true
		}
	}
	return false
}

// ChannelReading is one sampling tick of a single channel from the ACTUAL
// table.
type ChannelReading struct {
	Timestamp int64
	Value     float64
}

// CounterRow is one day's cumulative standings from the TOTAL table.
// Channels stored as NULL are simply absent from Values.
type CounterRow struct {
	Timestamp int64
	Values    map[string]float64
}

// MeterRow is one full-width row for either table: a timestamp plus all
// nine channel values in ChannelColumns order. Only the seeder writes these.
type MeterRow struct {
	Timestamp int64
	Values    []float64
}

// TableRange holds the earliest and latest formatted timestamps of one
// table, or nulls when the table is empty.
type TableRange struct {
	MinTime *string `json:"min_time"`
	MaxTime *string `json:"max_time"`
}
