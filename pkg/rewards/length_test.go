package rewards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordCounter stands in for the BPE encoder so the expectations do not
// depend on the tokenizer data files.
func wordCounter(text string) int {
	return len(strings.Fields(text))
}

func testLengthConfig() LengthConfig {
	cfg := DefaultLengthConfig()
	cfg.CountTokens = wordCounter
	return cfg
}

func thinkOfWords(n int) string {
	return "<think>\n" + strings.TrimSpace(strings.Repeat("w ", n)) + "\n</think>"
}

func TestLengthReward_Curve(t *testing.T) {
	reward := NewLengthReward(testLengthConfig())

	tests := []struct {
		name       string
		completion string
		expected   float64
	}{
		{name: "center length", completion: thinkOfWords(750), expected: 1.0},
		{name: "thousand tokens", completion: thinkOfWords(1000), expected: 1.7615942},
		{name: "fifteen hundred tokens", completion: thinkOfWords(1500), expected: 1.9950548},
		{name: "missing think block", completion: "<answer>42</answer>", expected: 0.0},
		{name: "empty think block", completion: "<think></think>", expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := reward(textBatch(nil, tt.completion))
			require.NoError(t, err)
			require.Len(t, scores, 1)
			assert.InDelta(t, tt.expected, scores[0], 1e-6)
		})
	}
}

func TestLengthReward_Monotonic(t *testing.T) {
	reward := NewLengthReward(testLengthConfig())

	scores, err := reward(textBatch(nil,
		thinkOfWords(100),
		thinkOfWords(750),
		thinkOfWords(1500),
	))
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Less(t, scores[0], scores[1])
	assert.Less(t, scores[1], scores[2])
	assert.GreaterOrEqual(t, scores[0], 0.0)
	assert.LessOrEqual(t, scores[2], LengthMaxReward)
}

func TestLengthReward_OverflowGuards(t *testing.T) {
	// A steepness high enough to overflow exp() must clamp to the
	// matching asymptote instead of producing NaN.
	cfg := testLengthConfig()
	cfg.Steepness = 1000.0

	reward := NewLengthReward(cfg)
	scores, err := reward(textBatch(nil,
		thinkOfWords(1), // far below center, exponent blows up positive
		thinkOfWords(2000),
	))
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores[0])
	assert.Equal(t, cfg.MaxReward, scores[1])
}

func TestLengthReward_OrderPreserved(t *testing.T) {
	reward := NewLengthReward(testLengthConfig())

	scores, err := reward(textBatch(nil,
		thinkOfWords(10),
		"no think tag",
		thinkOfWords(750),
	))
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 0.0, scores[1])
	assert.InDelta(t, 1.0, scores[2], 1e-9)
}
