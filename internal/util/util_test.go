package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCompletions(t *testing.T) {
	printers := []string{"Kitchen_TM_T20", "Office_Laser", "Bar_TM_T88"}
	assert.Equal(t, printers, ScoreCompletions("", printers, 5))
	assert.Equal(t, []string{"Kitchen_TM_T20"}, ScoreCompletions("kit", printers, 5))
	assert.Len(t, ScoreCompletions("TM", printers, 1), 1)
	assert.Nil(t, ScoreCompletions("zzz", printers, 5))
}

func TestRankIndexes(t *testing.T) {
	assert.Equal(t, []int{1}, RankIndexes("milk", []string{"eggs", "buy milk", "bread"}))
	assert.Empty(t, RankIndexes("xyz", []string{"eggs"}))
}

func TestParseTimeRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	s, u, err := ParseTimeRange("3d", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC), s)
	assert.True(t, u.IsZero())

	s, u, err = ParseTimeRange("2024-03-09", "2w", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 25, 12, 0, 0, 0, time.UTC), s, "reversed range is swapped")
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), u)

	s, _, err = ParseTimeRange("90m", "", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-90*time.Minute), s)

	_, _, err = ParseTimeRange("yesterday", "", now)
	assert.ErrorContains(t, err, "invalid --since")
	_, _, err = ParseTimeRange("", "xd", now)
	assert.ErrorContains(t, err, "invalid --until")
}
