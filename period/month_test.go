package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, ok := ParseMonth("2024-03")
	require.True(t, ok)
	assert.Equal(t, Month{Year: 2024, Month: 3}, m)
	assert.Equal(t, "2024-03", m.String())

	for _, bad := range []string{"", "2024", "2024-3", "24-03", "2024/03", "2024-03-01", "abcd-ef"} {
		_, ok := ParseMonth(bad)
		assert.False(t, ok, bad)
		assert.Nil(t, ResolveMonth(bad), bad)
	}
}

func TestRange(t *testing.T) {
	gte, lt := Month{Year: 2024, Month: 3}.Range()
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), gte)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), lt)
}

func TestRangeDecemberRollsYear(t *testing.T) {
	gte, lt := Month{Year: 2023, Month: 12}.Range()
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), gte)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), lt)
}

func TestRangeOutOfCalendarMonthIsNormalized(t *testing.T) {
	m := ResolveMonth("2024-13")
	require.NotNil(t, m)
	gte, lt := m.Range()
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), gte)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), lt)
}

func TestContainsIsHalfOpen(t *testing.T) {
	m := Month{Year: 2024, Month: 2}
	assert.True(t, m.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, m.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))

	// o mês é sempre avaliado em UTC
	sp := time.FixedZone("BRT", -3*3600)
	assert.False(t, m.Contains(time.Date(2024, 3, 1, 1, 0, 0, 0, sp)))
	assert.True(t, m.Contains(time.Date(2024, 2, 29, 20, 0, 0, 0, sp)))
}

func TestRangeSpansWholeMonth(t *testing.T) {
	cases := []struct {
		month Month
		days  int
	}{
		{Month{2023, 1}, 31},
		{Month{2023, 2}, 28},
		{Month{2024, 2}, 29},
		{Month{2024, 3}, 31},
		{Month{2024, 4}, 30},
		{Month{2024, 5}, 31},
		{Month{2024, 6}, 30},
		{Month{2024, 7}, 31},
		{Month{2024, 8}, 31},
		{Month{2024, 9}, 30},
		{Month{2024, 10}, 31},
		{Month{2024, 11}, 30},
		{Month{2024, 12}, 31},
		{Month{2000, 2}, 29},
		{Month{1900, 2}, 28},
	}
	for _, tc := range cases {
		t.Run(tc.month.String(), func(t *testing.T) {
			gte, lt := tc.month.Range()
			assert.Equal(t, time.Duration(tc.days)*24*time.Hour, lt.Sub(gte))
			assert.Equal(t, 1, gte.Day())
			assert.Equal(t, 1, lt.Day())
			assert.Equal(t, gte, tc.month.Start())
		})
	}
}
