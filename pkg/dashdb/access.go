package dashdb

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jhrncar/wattdash/pkg/timeframe"
)

// QueryChannelReadings returns all non-null readings of one channel within
// the inclusive Unix-second range, ordered by time. The channel must be a
// member of the closed column set.
func (d *DashDB) QueryChannelReadings(channel string, startStamp, endStamp int64) ([]ChannelReading, error) {
	if !IsChannel(channel) {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}

	query := fmt.Sprintf(
		"SELECT UTC_TIME, %s FROM ACTUAL "+
			"WHERE UTC_TIME BETWEEN ? AND ? AND %s IS NOT NULL "+
			"ORDER BY UTC_TIME",
		channel, channel,
	)
	rows, err := d.db.Query(query, startStamp, endStamp)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []ChannelReading
	for rows.Next() {
		var r ChannelReading
		if err := rows.Scan(&r.Timestamp, &r.Value); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// QueryTotalRows returns the cumulative counter rows within the inclusive
// Unix-second range, ordered by time. NULL channel values are omitted from
// each row's Values map.
func (d *DashDB) QueryTotalRows(startStamp, endStamp int64) ([]CounterRow, error) {
	query := fmt.Sprintf(
		"SELECT UTC_TIME, %s FROM TOTAL "+
			"WHERE UTC_TIME BETWEEN ? AND ? "+
			"ORDER BY UTC_TIME",
		strings.Join(TotalChannels, ", "),
	)
	rows, err := d.db.Query(query, startStamp, endStamp)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CounterRow
	for rows.Next() {
		var ts int64
		vals := make([]sql.NullFloat64, len(TotalChannels))
		dest := make([]any, 0, len(vals)+1)
		dest = append(dest, &ts)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := CounterRow{Timestamp: ts, Values: make(map[string]float64, len(vals))}
		for i, v := range vals {
			if v.Valid {
				row.Values[TotalChannels[i]] = v.Float64
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DataRange returns the earliest and latest timestamps of the ACTUAL and
// TOTAL tables as formatted UTC strings, or nulls for an empty table.
func (d *DashDB) DataRange() (map[string]TableRange, error) {
	ranges := make(map[string]TableRange, 2)
	for _, table := range []string{"ACTUAL", "TOTAL"} {
		var minT, maxT sql.NullInt64
		query := fmt.Sprintf("SELECT MIN(UTC_TIME), MAX(UTC_TIME) FROM %s", table)
		if err := d.db.QueryRow(query).Scan(&minT, &maxT); err != nil {
			return nil, err
		}

		var r TableRange
		if minT.Valid {
			s := timeframe.FormatTimestamp(minT.Int64)
			r.MinTime = &s
		}
		if maxT.Valid {
			s := timeframe.FormatTimestamp(maxT.Int64)
			r.MaxTime = &s
		}
		ranges[table] = r
	}
	return ranges, nil
}

// InsertActualRow writes one full sampling tick to the ACTUAL table.
func (d *DashDB) InsertActualRow(row *MeterRow) error {
	return d.insertRow("ACTUAL", row)
}

// InsertTotalRow writes one daily cumulative row to the TOTAL table.
func (d *DashDB) InsertTotalRow(row *MeterRow) error {
	return d.insertRow("TOTAL", row)
}

func (d *DashDB) insertRow(table string, row *MeterRow) error {
	if len(row.Values) != len(ChannelColumns) {
		return fmt.Errorf("expected %d channel values, got %d", len(ChannelColumns), len(row.Values))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ChannelColumns)+1), ", ")
	query := fmt.Sprintf(
		"INSERT INTO %s (UTC_TIME, %s) VALUES (%s)",
		table, strings.Join(ChannelColumns, ", "), placeholders,
	)

	args := make([]any, 0, len(row.Values)+1)
	args = append(args, row.Timestamp)
	for _, v := range row.Values {
		args = append(args, v)
	}
	_, err := d.db.Exec(query, args...)
	return err
}
