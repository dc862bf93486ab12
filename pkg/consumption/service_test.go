package consumption

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhrncar/wattdash/pkg/dashdb"
)

func openTestDB(t *testing.T) *dashdb.DashDB {
	t.Helper()
	db, err := dashdb.Open(filepath.Join(t.TempDir(), "consumption-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func insertCounter(t *testing.T, db *dashdb.DashDB, ts int64, channel string, value float64) {
	t.Helper()
	_, err := db.DB().Exec("INSERT INTO TOTAL (UTC_TIME, "+channel+") VALUES (?, ?)", ts, value)
	require.NoError(t, err)
}

func dayStamp(t *testing.T, day string) int64 {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	require.NoError(t, err)
	return d.Unix()
}

func findRecord(records []DeltaRecord, period, variable string) (DeltaRecord, bool) {
	for _, r := range records {
		if r.Period == period && r.Variable == variable {
			return r, true
		}
	}
	return DeltaRecord{}, false
}

func TestAggregateWeekBucket(t *testing.T) {
	db := openTestDB(t)
	// Three consecutive days inside the week of Monday 2024-01-01.
	insertCounter(t, db, dayStamp(t, "2024-01-01"), "U_IN", 10)
	insertCounter(t, db, dayStamp(t, "2024-01-02"), "U_IN", 15)
	insertCounter(t, db, dayStamp(t, "2024-01-03"), "U_IN", 23)

	result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-07 23:59:59", BucketWeek, "stack")
	require.NoError(t, err)

	rec, ok := findRecord(result.Records, "2024-01-01", "U_IN")
	require.True(t, ok)
	assert.Equal(t, 13.0, rec.Delta, "last minus first within the bucket")
}

func TestAggregateSyntheticVariables(t *testing.T) {
	t.Run("SUM_IN is the sum of the three input phases", func(t *testing.T) {
		rows := []dashdb.CounterRow{
			{Timestamp: 1000, Values: map[string]float64{"U_IN": 5, "V_IN": 7, "W_IN": 9}},
		}

		long := melt(rows)

		var found bool
		for _, r := range long {
			if r.variable == SumInVariable {
				found = true
				assert.Equal(t, 21.0, r.value)
			}
		}
		assert.True(t, found)
	})

	t.Run("MACHINES is the sum of the three machine counters", func(t *testing.T) {
		rows := []dashdb.CounterRow{
			{Timestamp: 1000, Values: map[string]float64{"ATLAS": 1, "BUPI": 2, "RENDER": 4}},
		}

		long := melt(rows)

		var found bool
		for _, r := range long {
			if r.variable == MachinesVariable {
				found = true
				assert.Equal(t, 7.0, r.value)
			}
		}
		assert.True(t, found)
	})

	t.Run("synthetic deltas difference like real channels", func(t *testing.T) {
		db := openTestDB(t)
		day1, day2 := dayStamp(t, "2024-01-01"), dayStamp(t, "2024-01-02")
		_, err := db.DB().Exec("INSERT INTO TOTAL (UTC_TIME, U_IN, V_IN, W_IN) VALUES (?, 5, 7, 9)", day1)
		require.NoError(t, err)
		_, err = db.DB().Exec("INSERT INTO TOTAL (UTC_TIME, U_IN, V_IN, W_IN) VALUES (?, 6, 8, 10)", day2)
		require.NoError(t, err)

		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-07 23:59:59", BucketWeek, "stack")
		require.NoError(t, err)

		rec, ok := findRecord(result.Records, "2024-01-01", SumInVariable)
		require.True(t, ok)
		assert.Equal(t, 3.0, rec.Delta)
	})
}

func TestAggregateBuckets(t *testing.T) {
	db := openTestDB(t)
	// Sunday and Monday fall in different weeks.
	insertCounter(t, db, dayStamp(t, "2024-01-07"), "ATLAS", 100)
	insertCounter(t, db, dayStamp(t, "2024-01-08"), "ATLAS", 130)

	t.Run("week bucketing splits across the boundary", func(t *testing.T) {
		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-14 23:59:59", BucketWeek, "stack")
		require.NoError(t, err)

		first, ok := findRecord(result.Records, "2024-01-01", "ATLAS")
		require.True(t, ok)
		second, ok := findRecord(result.Records, "2024-01-08", "ATLAS")
		require.True(t, ok)
		assert.Equal(t, 0.0, first.Delta, "single-row group")
		assert.Equal(t, 0.0, second.Delta, "single-row group")
	})

	t.Run("no bucketing collapses to one group", func(t *testing.T) {
		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-14 23:59:59", BucketNone, "stack")
		require.NoError(t, err)

		rec, ok := findRecord(result.Records, AllDataBucket, "ATLAS")
		require.True(t, ok)
		assert.Equal(t, 30.0, rec.Delta)
	})

	t.Run("month bucketing keys on the month start", func(t *testing.T) {
		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-14 23:59:59", BucketMonth, "stack")
		require.NoError(t, err)

		rec, ok := findRecord(result.Records, "2024-01-01", "ATLAS")
		require.True(t, ok)
		assert.Equal(t, 30.0, rec.Delta)
	})

	t.Run("day bucketing gives one group per day", func(t *testing.T) {
		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-14 23:59:59", BucketDay, "stack")
		require.NoError(t, err)

		_, ok := findRecord(result.Records, "2024-01-07", "ATLAS")
		assert.True(t, ok)
		_, ok = findRecord(result.Records, "2024-01-08", "ATLAS")
		assert.True(t, ok)
	})
}

func TestAggregateNegativeDelta(t *testing.T) {
	db := openTestDB(t)
	insertCounter(t, db, dayStamp(t, "2024-01-01"), "BUPI", 30)
	insertCounter(t, db, dayStamp(t, "2024-01-02"), "BUPI", 20)

	result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-07 23:59:59", BucketWeek, "stack")
	require.NoError(t, err)

	rec, ok := findRecord(result.Records, "2024-01-01", "BUPI")
	require.True(t, ok)
	assert.Equal(t, -10.0, rec.Delta, "decreasing counters pass through unclamped")
}

func TestAggregateEdgeCases(t *testing.T) {
	t.Run("empty range yields empty records, not an error", func(t *testing.T) {
		db := openTestDB(t)

		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-07 23:59:59", BucketWeek, "group")

		require.NoError(t, err)
		assert.Empty(t, result.Records)
		assert.Equal(t, "group", result.BarMode)
	})

	t.Run("bar mode passes through untouched", func(t *testing.T) {
		db := openTestDB(t)
		insertCounter(t, db, dayStamp(t, "2024-01-01"), "U_IN", 1)

		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-07 23:59:59", BucketWeek, "group")

		require.NoError(t, err)
		assert.Equal(t, "group", result.BarMode)
	})

	t.Run("malformed input timestamp is an error", func(t *testing.T) {
		db := openTestDB(t)

		_, err := Aggregate(db, "2024-01-01", "2024-01-07 23:59:59", BucketWeek, "stack")

		assert.Error(t, err)
	})

	t.Run("unrepresentable stored timestamp fails the whole call", func(t *testing.T) {
		db := openTestDB(t)
		// Year 3000, far outside the sane calendar range.
		insertCounter(t, db, 32503680000, "U_IN", 1)

		_, err := Aggregate(db, "2024-01-01 00:00:00", "3000-01-01 23:59:59", BucketWeek, "stack")

		require.ErrorIs(t, err, ErrTimeConversion)
	})

	t.Run("records come back sorted by bucket then variable", func(t *testing.T) {
		db := openTestDB(t)
		day1, day8 := dayStamp(t, "2024-01-01"), dayStamp(t, "2024-01-08")
		_, err := db.DB().Exec("INSERT INTO TOTAL (UTC_TIME, U_IN, ATLAS) VALUES (?, 1, 2)", day1)
		require.NoError(t, err)
		_, err = db.DB().Exec("INSERT INTO TOTAL (UTC_TIME, U_IN, ATLAS) VALUES (?, 3, 5)", day8)
		require.NoError(t, err)

		result, err := Aggregate(db, "2024-01-01 00:00:00", "2024-01-14 23:59:59", BucketWeek, "stack")
		require.NoError(t, err)

		for i := 1; i < len(result.Records); i++ {
			prev, cur := result.Records[i-1], result.Records[i]
			if prev.Period == cur.Period {
				assert.Less(t, prev.Variable, cur.Variable)
			} else {
				assert.Less(t, prev.Period, cur.Period)
			}
		}
	})
}
