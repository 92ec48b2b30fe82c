package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
		{2025, time.January, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysIn(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestDateInDoesNotShiftAcrossMidnight(t *testing.T) {
	cairo := time.FixedZone("EET", 2*60*60)
	// 23:30 UTC on the 14th is already the 15th in Cairo.
	instant := time.Date(2025, time.March, 14, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, Date{2025, time.March, 15}, DateIn(instant, cairo))
	assert.Equal(t, Date{2025, time.March, 14}, DateIn(instant, time.UTC))
}

func TestScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, time.May, 6, 0, 0, 0, 0, time.FixedZone("X", -5*60*60))))
	assert.Equal(t, Date{2025, time.May, 6}, d)

	require.NoError(t, d.Scan([]byte("2024-02-29")))
	assert.Equal(t, Date{2024, time.February, 29}, d)

	require.NoError(t, d.Scan("2024-12-31T00:00:00Z"))
	assert.Equal(t, Date{2024, time.December, 31}, d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("not-a-date"))
}

func TestValue(t *testing.T) {
	v, err := Date{2025, time.July, 4}.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-07-04", v)
}

func TestCompareAndArithmetic(t *testing.T) {
	a := Date{2024, time.February, 28}
	b := a.AddDays(1)
	c := b.AddDays(1)

	assert.Equal(t, Date{2024, time.February, 29}, b)
	assert.Equal(t, Date{2024, time.March, 1}, c)
	assert.True(t, a.Before(b))
	assert.True(t, c.After(b))
	assert.Equal(t, 0, b.Compare(Date{2024, time.February, 29}))
	assert.Equal(t, Date{2024, time.February, 1}, b.FirstOfMonth())
	assert.Equal(t, b, a.LastOfMonth())
	assert.Equal(t, time.Thursday, b.Weekday())
	assert.Equal(t, Date{2025, time.May, 1}, NewDate(2025, time.April, 31))
}
