package rewards

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/rizome-dev/go-grpo-rewards/pkg/mathverify"
	"github.com/rizome-dev/go-grpo-rewards/pkg/parsers"
)

// Efficiency interpolation boundaries. A logistic weight over the
// think-block length blends between the concise and thorough ends:
// correct-and-concise earns the most, incorrect-and-concise ("lazy")
// is penalized hardest, incorrect-and-verbose ("effortful but wrong")
// least.
//
// This scorer was superseded by the separate correctness and length
// rewards and is not part of the default suite; it remains available
// as an alternative joint component.
const (
	rewardEfficientCorrect    = 0.7
	rewardThoroughCorrect     = 0.4
	penaltyLazyIncorrect      = -0.8
	penaltyEffortfulIncorrect = -0.1

	efficiencyPivotLength = 1000.0
	efficiencySteepness   = 0.01
)

// EfficiencyConfig wires the oracle and token counter
type EfficiencyConfig struct {
	Parse       func(string) *mathverify.Expr
	Verify      func(gold, candidate *mathverify.Expr) (bool, error)
	CountTokens func(string) int
}

// DefaultEfficiencyConfig uses the mathverify oracle and BPE counter
func DefaultEfficiencyConfig() EfficiencyConfig {
	return EfficiencyConfig{
		Parse:       mathverify.Parse,
		Verify:      mathverify.Verify,
		CountTokens: CountTokens,
	}
}

// ReasoningEfficiencyReward scores the batch with the defaults
var ReasoningEfficiencyReward = NewReasoningEfficiencyReward(DefaultEfficiencyConfig())

// NewReasoningEfficiencyReward builds the joint correctness × length
// efficiency scorer.
func NewReasoningEfficiencyReward(cfg EfficiencyConfig) RewardFunc {
	correctness := CorrectnessConfig{Parse: cfg.Parse, Verify: cfg.Verify}

	return func(batch Batch) ([]float64, error) {
		if err := batch.requireAnswers(); err != nil {
			return nil, err
		}

		completions := parsers.CompletionsToList(batch.Completions)
		scores := make([]float64, len(completions))
		for i, completion := range completions {
			scores[i] = scoreEfficiency(cfg, correctness, completion, batch.Answers[i])
		}
		return scores, nil
	}
}

func scoreEfficiency(cfg EfficiencyConfig, correctness CorrectnessConfig, completion, answer string) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("efficiency scoring panicked")
			score = 0.0
		}
	}()

	golds := parseGoldVariants(correctness, answer)
	correct := scoreCorrectness(correctness, completion, golds) > 0

	length := 0.0
	if content, ok := parsers.ExtractTagContent(completion, "think", true); ok && content != "" {
		length = float64(cfg.CountTokens(content))
	}

	// weight ~1 for short think blocks, ~0 for long ones.
	exponent := efficiencySteepness * (length - efficiencyPivotLength)
	var weight float64
	switch {
	case exponent > lengthExpOverflowLimit:
		weight = 0.0
	case exponent < -lengthExpOverflowLimit:
		weight = 1.0
	default:
		weight = 1.0 / (1.0 + math.Exp(exponent))
	}

	if correct {
		return weight*rewardEfficientCorrect + (1.0-weight)*rewardThoroughCorrect
	}
	return weight*penaltyLazyIncorrect + (1.0-weight)*penaltyEffortfulIncorrect
}
