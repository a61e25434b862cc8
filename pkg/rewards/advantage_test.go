package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAdvantages_SingleGroup(t *testing.T) {
	advantages, err := GroupAdvantages([]float64{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	require.Len(t, advantages, 4)

	// mean 2.5, sample std sqrt(5/3).
	expected := []float64{-1.161895, -0.387298, 0.387298, 1.161895}
	for i := range expected {
		assert.InDelta(t, expected[i], advantages[i], 1e-5)
	}
}

func TestGroupAdvantages_MultipleGroups(t *testing.T) {
	// Each group normalizes independently of the other's scale.
	advantages, err := GroupAdvantages([]float64{0, 1, 10, 30}, 2)
	require.NoError(t, err)
	require.Len(t, advantages, 4)

	assert.InDelta(t, -0.707107, advantages[0], 1e-5)
	assert.InDelta(t, 0.707107, advantages[1], 1e-5)
	assert.InDelta(t, -0.707107, advantages[2], 1e-5)
	assert.InDelta(t, 0.707107, advantages[3], 1e-5)
}

func TestGroupAdvantages_IdenticalRewards(t *testing.T) {
	// Zero spread must normalize to zero, not NaN.
	advantages, err := GroupAdvantages([]float64{1.5, 1.5, 1.5, 1.5}, 4)
	require.NoError(t, err)
	for _, a := range advantages {
		assert.InDelta(t, 0.0, a, 1e-9)
	}
}

func TestGroupAdvantages_GroupOfOne(t *testing.T) {
	advantages, err := GroupAdvantages([]float64{3.2, -1.0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, advantages[0], 1e-9)
	assert.InDelta(t, 0.0, advantages[1], 1e-9)
}

func TestGroupAdvantages_Errors(t *testing.T) {
	_, err := GroupAdvantages([]float64{1, 2, 3}, 0)
	require.Error(t, err)

	_, err = GroupAdvantages([]float64{1, 2, 3}, -4)
	require.Error(t, err)

	_, err = GroupAdvantages([]float64{1, 2, 3}, 2)
	require.Error(t, err)
}

func TestGroupAdvantages_Empty(t *testing.T) {
	advantages, err := GroupAdvantages(nil, 4)
	require.NoError(t, err)
	assert.Empty(t, advantages)
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]float64{1, 2, 3})
	assert.InDelta(t, 2.0, stats.Mean, 1e-9)
	assert.InDelta(t, 1.0, stats.Std, 1e-9)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 3.0, stats.Max)
}

func TestSummarize_Degenerate(t *testing.T) {
	assert.Equal(t, BatchStats{}, Summarize(nil))

	single := Summarize([]float64{0.7})
	assert.Equal(t, 0.7, single.Mean)
	assert.Equal(t, 0.0, single.Std)
	assert.Equal(t, 0.7, single.Min)
	assert.Equal(t, 0.7, single.Max)
}
