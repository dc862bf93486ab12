package timeframe

// Timestamp layouts used throughout the dashboard. All times are UTC.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
)

// Period units selectable in the dashboard controls.
const (
	UnitYear  = "year"
	UnitMonth = "month"
	UnitWeek  = "week"
	UnitDay   = "day"
)

// PeriodOption is one selectable value for a period unit dropdown.
type PeriodOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
