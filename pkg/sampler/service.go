// Package sampler thins the high-frequency ACTUAL series for display while
// guaranteeing that every channel's daily maximum survives the thinning.
package sampler

import (
	"sort"
	"time"

	"github.com/jhrncar/wattdash/pkg/dashdb"
	"github.com/jhrncar/wattdash/pkg/timeframe"
)

// Sample fetches readings for the requested channels between two timestamp
// strings ("YYYY-MM-DD HH:MM:SS", UTC) and returns the union of the
// every-step-th rows and the per-day peak rows, ordered by
// (channel, timestamp). An empty channel set yields an empty result without
// touching the store; a malformed timestamp is an error, not "no data".
func Sample(db *dashdb.DashDB, startDT, endDT string, channels []string, step int) ([]SampledPoint, error) {
	if len(channels) == 0 {
		return nil, nil
	}
	startStamp, err := timeframe.ParseTimestamp(startDT)
	if err != nil {
		return nil, err
	}
	endStamp, err := timeframe.ParseTimestamp(endDT)
	if err != nil {
		return nil, err
	}
	if step < 1 {
		step = 1
	}

	var points []SampledPoint
	for _, channel := range uniqueSorted(channels) {
		readings, err := db.QueryChannelReadings(channel, startStamp, endStamp)
		if err != nil {
			return nil, err
		}
		points = append(points, sampleChannel(channel, readings, step)...)
	}
	return points, nil
}

// sampleChannel produces the sampled and peak series for one channel whose
// readings arrive ordered by time. The peak of a UTC day is its
// maximum-value reading; on a tie the earliest reading wins.
func sampleChannel(channel string, readings []dashdb.ChannelReading, step int) []SampledPoint {
	var out []SampledPoint
	peaks := make(map[string]dashdb.ChannelReading)
	var dayOrder []string

	for i, r := range readings {
		if i%step == 0 {
			out = append(out, SampledPoint{
				Timestamp: r.Timestamp,
				Variable:  channel,
				Value:     r.Value,
			})
		}

		day := time.Unix(r.Timestamp, 0).UTC().Format(timeframe.DateLayout)
		best, ok := peaks[day]
		if !ok {
			peaks[day] = r
			dayOrder = append(dayOrder, day)
		} else if r.Value > best.Value {
			peaks[day] = r
		}
	}

	for _, day := range dayOrder {
		r := peaks[day]
		out = append(out, SampledPoint{
			Timestamp: r.Timestamp,
			Variable:  channel,
			Value:     r.Value,
			IsPeak:    true,
		})
	}

	// Stable sort keeps the sampled row ahead of the peak row when both
	// share a timestamp, so identical calls give identical output.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

func uniqueSorted(channels []string) []string {
	seen := make(map[string]bool, len(channels))
	var out []string
	for _, c := range channels {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
