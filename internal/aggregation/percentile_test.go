package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileRank(t *testing.T) {
	pop := []int{10, 20, 30, 40, 50}

	assert.Equal(t, 0, PercentileRank(pop, 10))
	assert.Equal(t, 40, PercentileRank(pop, 30))
	assert.Equal(t, 80, PercentileRank(pop, 50))
	assert.Equal(t, 100, PercentileRank(pop, 60), "above everyone is 100")
	assert.Equal(t, 0, PercentileRank(nil, 5), "empty population ranks 0")
}

func TestPercentileRank_AllTied(t *testing.T) {
	pop := []int{80, 80, 80}
	assert.Equal(t, 0, PercentileRank(pop, 80))
}

func TestPacePercentile_BelowMinSampleIsNil(t *testing.T) {
	pop := []int{30, 40, 50, 60}
	require.Less(t, len(pop), MinPaceSampleSize)

	assert.Nil(t, PacePercentile(pop, 30))
}

func TestPacePercentile_FastestOfTen(t *testing.T) {
	pop := []int{30, 45, 50, 55, 60, 65, 70, 75, 80, 90}

	got := PacePercentile(pop, 30)

	require.NotNil(t, got)
	assert.GreaterOrEqual(t, *got, 90, "sole fastest of 10 ranks top-10%")
}

func TestPacePercentile_SlowestIsZero(t *testing.T) {
	pop := []int{30, 40, 50, 60, 90}

	got := PacePercentile(pop, 90)

	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestPacePercentile_TiesShareCredit(t *testing.T) {
	// Five players all tied: each is faster than none, but the tie
	// credit keeps the result off the 0/100 extremes.
	pop := []int{50, 50, 50, 50, 50}

	got := PacePercentile(pop, 50)

	require.NotNil(t, got)
	assert.Equal(t, 40, *got)
}

func TestPacePercentile_MiddleOfPack(t *testing.T) {
	pop := []int{10, 20, 30, 40, 50}

	got := PacePercentile(pop, 30)

	require.NotNil(t, got)
	assert.Equal(t, 40, *got, "faster than 2 of 5")
}
