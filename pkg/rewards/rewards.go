// Package rewards implements the reward functions for GRPO fine-tuning
// on math word problems: mathematical correctness, structural format
// adherence, think-block length shaping, reasoning-quality keyword
// scoring and an optional correctness/conciseness trade-off. Each
// function scores a whole generation batch and returns one float per
// completion, in order.
package rewards

import (
	"fmt"

	"github.com/rizome-dev/go-grpo-rewards/pkg/types"
	"github.com/rizome-dev/go-grpo-rewards/pkg/utils"
)

// Batch is one generation batch handed over by the trainer. Answers
// align positionally with Completions; the remaining columns are
// optional and used for logging only.
type Batch struct {
	Completions  []types.Completion
	Answers      []string
	IDs          []string
	Questions    []string
	Difficulties []string
}

// NewBatch builds a batch from a scored dataset
func NewBatch(samples []types.Sample) Batch {
	batch := Batch{
		Completions:  make([]types.Completion, len(samples)),
		Answers:      make([]string, len(samples)),
		IDs:          make([]string, len(samples)),
		Questions:    make([]string, len(samples)),
		Difficulties: make([]string, len(samples)),
	}
	for i, s := range samples {
		batch.Completions[i] = s.Completion
		batch.Answers[i] = s.Answer
		batch.IDs[i] = s.ID
		batch.Questions[i] = s.Question
		batch.Difficulties[i] = s.Difficulty
	}
	return batch
}

// requireAnswers enforces the batch contract for answer-dependent
// rewards. A length mismatch is a caller bug, not a data-quality
// issue, and fails the whole call before any per-item scoring.
func (b Batch) requireAnswers() error {
	if len(b.Answers) != len(b.Completions) {
		return fmt.Errorf("rewards: answers length %d does not match completions length %d",
			len(b.Answers), len(b.Completions))
	}
	return nil
}

// RewardFunc scores a batch and returns exactly one float per
// completion, in input order. Errors are reserved for batch-level
// contract violations; per-completion failures map to that function's
// defined zero or penalty value.
type RewardFunc func(batch Batch) ([]float64, error)

// Suite is a named set of reward functions with per-function weights.
// The trainer consumes the weighted per-completion totals; the
// breakdown stays available for inspection.
type Suite struct {
	names   []string
	funcs   []RewardFunc
	weights []float64
}

// NewSuite creates an empty reward suite
func NewSuite() *Suite {
	return &Suite{}
}

// DefaultSuite returns the suite used by the final training
// configuration: correctness, format, length and reasoning, equally
// weighted. The efficiency reward is registered nowhere by default.
func DefaultSuite() *Suite {
	suite := NewSuite()
	suite.Add("correctness", CorrectnessReward, 1.0)
	suite.Add("format", FormatReward, 1.0)
	suite.Add("length", LengthReward, 1.0)
	suite.Add("reasoning", ReasoningReward, 1.0)
	return suite
}

// Add registers a named reward function with a weight
func (s *Suite) Add(name string, fn RewardFunc, weight float64) *Suite {
	s.names = append(s.names, name)
	s.funcs = append(s.funcs, fn)
	s.weights = append(s.weights, weight)
	return s
}

// Names returns the registered function names in order
func (s *Suite) Names() []string {
	return append([]string(nil), s.names...)
}

// Weights returns the weight vector in registration order
func (s *Suite) Weights() []float64 {
	return append([]float64(nil), s.weights...)
}

// Result holds the scores of one suite evaluation
type Result struct {
	// Totals is the weighted per-completion sum across all functions.
	Totals []float64
	// ByFunc maps each function name to its per-completion scores.
	ByFunc map[string][]float64
}

// Score evaluates every registered reward function against the batch.
// Functions run concurrently; they are pure and share no state.
func (s *Suite) Score(batch Batch) (*Result, error) {
	indices := make([]int, len(s.funcs))
	for i := range indices {
		indices[i] = i
	}

	scores, err := utils.ParallelMap(indices, len(s.funcs), func(i int) ([]float64, error) {
		out, err := s.funcs[i](batch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.names[i], err)
		}
		if len(out) != len(batch.Completions) {
			return nil, fmt.Errorf("%s: returned %d scores for %d completions",
				s.names[i], len(out), len(batch.Completions))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Totals: make([]float64, len(batch.Completions)),
		ByFunc: make(map[string][]float64, len(s.funcs)),
	}
	for i, perFunc := range scores {
		result.ByFunc[s.names[i]] = perFunc
		for j, v := range perFunc {
			result.Totals[j] += s.weights[i] * v
		}
	}
	return result, nil
}
