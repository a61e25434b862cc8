package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEfficiencyConfig() EfficiencyConfig {
	cfg := DefaultEfficiencyConfig()
	cfg.CountTokens = wordCounter
	return cfg
}

func TestReasoningEfficiencyReward_Quadrants(t *testing.T) {
	reward := NewReasoningEfficiencyReward(testEfficiencyConfig())

	tests := []struct {
		name       string
		completion string
		answer     string
		expected   float64
	}{
		{
			name:       "correct and concise",
			completion: thinkOfWords(10) + "<answer>42</answer>",
			answer:     "#### 42",
			expected:   rewardEfficientCorrect,
		},
		{
			name:       "correct and verbose",
			completion: thinkOfWords(3000) + "<answer>42</answer>",
			answer:     "#### 42",
			expected:   rewardThoroughCorrect,
		},
		{
			name:       "incorrect and concise",
			completion: thinkOfWords(10) + "<answer>41</answer>",
			answer:     "#### 42",
			expected:   penaltyLazyIncorrect,
		},
		{
			name:       "incorrect and verbose",
			completion: thinkOfWords(3000) + "<answer>41</answer>",
			answer:     "#### 42",
			expected:   penaltyEffortfulIncorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := reward(textBatch([]string{tt.answer}, tt.completion))
			require.NoError(t, err)
			require.Len(t, scores, 1)
			assert.InDelta(t, tt.expected, scores[0], 1e-3)
		})
	}
}

func TestReasoningEfficiencyReward_Pivot(t *testing.T) {
	reward := NewReasoningEfficiencyReward(testEfficiencyConfig())

	// Exactly at the pivot length the weight is 0.5 and the score is
	// the midpoint of the two ends.
	scores, err := reward(textBatch(
		[]string{"#### 42", "#### 42"},
		thinkOfWords(1000)+"<answer>42</answer>",
		thinkOfWords(1000)+"<answer>41</answer>",
	))
	require.NoError(t, err)
	assert.InDelta(t, (rewardEfficientCorrect+rewardThoroughCorrect)/2, scores[0], 1e-9)
	assert.InDelta(t, (penaltyLazyIncorrect+penaltyEffortfulIncorrect)/2, scores[1], 1e-9)
}

func TestReasoningEfficiencyReward_NoThinkCountsAsConcise(t *testing.T) {
	reward := NewReasoningEfficiencyReward(testEfficiencyConfig())

	scores, err := reward(textBatch([]string{"#### 42"}, "<answer>41</answer>"))
	require.NoError(t, err)
	assert.InDelta(t, penaltyLazyIncorrect, scores[0], 1e-3)
}

func TestReasoningEfficiencyReward_BatchContract(t *testing.T) {
	reward := NewReasoningEfficiencyReward(testEfficiencyConfig())

	_, err := reward(textBatch([]string{"#### 1"}, "<answer>1</answer>", "<answer>1</answer>"))
	require.Error(t, err)
}
