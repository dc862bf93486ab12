package sampler

// SampledPoint is one output row of the downsampler: either an every-Nth
// reading or a daily peak, for one channel. A timestamp can appear twice
// for the same channel when it is both.
type SampledPoint struct {
	Timestamp int64   `json:"utc_time"`
	Variable  string  `json:"variable"`
	Value     float64 `json:"value"`
	IsPeak    bool    `json:"is_peak"`
}
