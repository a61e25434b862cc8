package rewards

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// advantageEpsilon keeps the normalization defined for groups whose
// rewards are all identical.
const advantageEpsilon = 1e-8

// GroupAdvantages converts per-completion rewards into group-relative
// advantages: within each prompt's group of groupSize completions, the
// reward is centered on the group mean and scaled by the group
// standard deviation. This is the relative signal a GRPO trainer
// consumes; it is exposed here for offline inspection of batches.
func GroupAdvantages(rewards []float64, groupSize int) ([]float64, error) {
	if groupSize <= 0 {
		return nil, fmt.Errorf("rewards: group size must be positive, got %d", groupSize)
	}
	if len(rewards)%groupSize != 0 {
		return nil, fmt.Errorf("rewards: batch size %d is not a multiple of group size %d",
			len(rewards), groupSize)
	}

	advantages := make([]float64, len(rewards))
	for start := 0; start < len(rewards); start += groupSize {
		group := rewards[start : start+groupSize]
		mean, std := stat.MeanStdDev(group, nil)
		if groupSize == 1 {
			std = 0
		}
		for i, r := range group {
			advantages[start+i] = (r - mean) / (std + advantageEpsilon)
		}
	}
	return advantages, nil
}

// BatchStats summarizes a reward column
type BatchStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summarize computes summary statistics over a reward column
func Summarize(rewards []float64) BatchStats {
	if len(rewards) == 0 {
		return BatchStats{}
	}
	mean, std := stat.MeanStdDev(rewards, nil)
	if len(rewards) == 1 {
		std = 0
	}
	s := BatchStats{Mean: mean, Std: std, Min: rewards[0], Max: rewards[0]}
	for _, r := range rewards[1:] {
		if r < s.Min {
			s.Min = r
		}
		if r > s.Max {
			s.Max = r
		}
	}
	return s
}
