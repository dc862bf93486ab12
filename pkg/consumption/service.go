// Package consumption turns the TOTAL table's cumulative counters into
// per-period consumption deltas: melt the wide rows into long form, derive
// the SUM_IN and MACHINES synthetic variables, bucket by calendar period
// and difference the first and last standing of each group.
package consumption

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhrncar/wattdash/pkg/dashdb"
	"github.com/jhrncar/wattdash/pkg/timeframe"
)

// ErrTimeConversion reports a stored timestamp that does not map to a sane
// calendar instant. The whole aggregation is abandoned rather than
// partially computed.
var ErrTimeConversion = errors.New("time conversion error in TOTAL data")

// longRow is one melted (timestamp, variable, value) observation.
type longRow struct {
	timestamp int64
	variable  string
	value     float64
}

// Aggregate fetches the cumulative counters between two timestamp strings
// ("YYYY-MM-DD HH:MM:SS", UTC) and returns one delta per (bucket, variable)
// group, sorted by bucket then variable. A counter that decreases inside a
// bucket yields a negative delta; the value is passed through as stored.
func Aggregate(db *dashdb.DashDB, startDT, endDT string, bucket Bucket, barMode string) (*Result, error) {
	startStamp, err := timeframe.ParseTimestamp(startDT)
	if err != nil {
		return nil, err
	}
	endStamp, err := timeframe.ParseTimestamp(endDT)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryTotalRows(startStamp, endStamp)
	if err != nil {
		return nil, err
	}
	long := melt(rows)
	if len(long) == 0 {
		return &Result{BarMode: barMode}, nil
	}

	// Rows arrive in time order, so the first value seen per group is the
	// group's first standing and the latest overwrite is its last.
	type groupKey struct {
		period   string
		variable string
	}
	type window struct {
		first float64
		last  float64
	}
	groups := make(map[groupKey]*window)
	for _, r := range long {
		period, err := periodFor(r.timestamp, bucket)
		if err != nil {
			return nil, err
		}
		key := groupKey{period: period, variable: r.variable}
		if w, ok := groups[key]; ok {
			w.last = r.value
		} else {
			groups[key] = &window{first: r.value, last: r.value}
		}
	}

	records := make([]DeltaRecord, 0, len(groups))
	for key, w := range groups {
		records = append(records, DeltaRecord{
			Period:   key.period,
			Variable: key.variable,
			Delta:    w.last - w.first,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Period != records[j].Period {
			return records[i].Period < records[j].Period
		}
		return records[i].Variable < records[j].Variable
	})
	return &Result{Records: records, BarMode: barMode}, nil
}

// melt reshapes wide counter rows into long form, appending the SUM_IN and
// MACHINES synthetic variables per timestamp. NULL channels are skipped;
// the synthetic sums cover whichever of their channels are present.
func melt(rows []dashdb.CounterRow) []longRow {
	var long []longRow
	for _, row := range rows {
		var sumIn, machines float64
		var hasSumIn, hasMachines bool
		for _, channel := range dashdb.TotalChannels {
			v, ok := row.Values[channel]
			if !ok {
				continue
			}
			long = append(long, longRow{timestamp: row.Timestamp, variable: channel, value: v})
			switch channel {
			case "U_IN", "V_IN", "W_IN":
				sumIn += v
				hasSumIn = true
			case "ATLAS", "BUPI", "RENDER":
				machines += v
				hasMachines = true
			}
		}
		if hasSumIn {
			long = append(long, longRow{timestamp: row.Timestamp, variable: SumInVariable, value: sumIn})
		}
		if hasMachines {
			long = append(long, longRow{timestamp: row.Timestamp, variable: MachinesVariable, value: machines})
		}
	}
	return long
}

// periodFor keys a timestamp to its bucket label: "All Data" when no
// bucketing is requested, otherwise the bucket's start date.
func periodFor(ts int64, bucket Bucket) (string, error) {
	t := time.Unix(ts, 0).UTC()
	// Timestamps outside this range can only come from corrupt rows.
	if y := t.Year(); y < 1678 || y > 2261 {
		return "", fmt.Errorf("%w: timestamp %d", ErrTimeConversion, ts)
	}
	switch bucket {
	case BucketDay:
		return timeframe.DayStart(t).Format(timeframe.DateLayout), nil
	case BucketWeek:
		return timeframe.WeekStart(t).Format(timeframe.DateLayout), nil
	case BucketMonth:
		return timeframe.MonthStart(t).Format(timeframe.DateLayout), nil
	case BucketYear:
		return timeframe.YearStart(t).Format(timeframe.DateLayout), nil
	default:
		return AllDataBucket, nil
	}
}
