package consumption

// Bucket selects how consumption deltas are grouped in time.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
	BucketNone  Bucket = "none"
)

// AllDataBucket labels the single group used when no time bucketing is
// requested.
const AllDataBucket = "All Data"

// Synthetic variables derived per timestamp before bucketing.
const (
	SumInVariable    = "SUM_IN"
	MachinesVariable = "MACHINES"
)

// DeltaRecord is the consumption of one variable over one bucket: the last
// cumulative standing minus the first.
type DeltaRecord struct {
	Period   string  `json:"period"`
	Variable string  `json:"variable"`
	Delta    float64 `json:"value"`
}

// Result carries the aggregated records plus the bar-mode display hint,
// passed through untouched for the chart layer.
type Result struct {
	Records []DeltaRecord `json:"records"`
	BarMode string        `json:"bar_mode"`
}
