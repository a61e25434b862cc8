package rewards

import (
	"github.com/rs/zerolog/log"

	"github.com/rizome-dev/go-grpo-rewards/pkg/mathverify"
	"github.com/rizome-dev/go-grpo-rewards/pkg/parsers"
)

// Correctness reward tiers. The answer tag outranks the think tag so
// the model learns to place its final answer in the right block while
// correct-but-misplaced reasoning still earns signal early in training.
const (
	RewardCorrectInAnswer    = 2.5
	RewardCorrectInThinkOnly = 2.0
	PenaltyIncorrectAnswer   = -0.5
	PenaltyVerificationError = -0.1
)

// CorrectnessConfig wires the parse/verify oracle into the scorer
type CorrectnessConfig struct {
	Parse  func(string) *mathverify.Expr
	Verify func(gold, candidate *mathverify.Expr) (bool, error)
}

// DefaultCorrectnessConfig uses the mathverify oracle
func DefaultCorrectnessConfig() CorrectnessConfig {
	return CorrectnessConfig{
		Parse:  mathverify.Parse,
		Verify: mathverify.Verify,
	}
}

// CorrectnessReward scores the batch with the default oracle
var CorrectnessReward = NewCorrectnessReward(DefaultCorrectnessConfig())

// NewCorrectnessReward builds the correctness reward function. Per
// completion it checks the <answer> block first and falls back to the
// <think> block only when <answer> is absent, empty or unparseable:
// an answer that parses but verifies wrong is final.
func NewCorrectnessReward(cfg CorrectnessConfig) RewardFunc {
	return func(batch Batch) ([]float64, error) {
		if err := batch.requireAnswers(); err != nil {
			return nil, err
		}

		completions := parsers.CompletionsToList(batch.Completions)
		scores := make([]float64, len(completions))
		for i, completion := range completions {
			golds := parseGoldVariants(cfg, batch.Answers[i])
			scores[i] = scoreCorrectness(cfg, completion, golds)

			log.Debug().
				Str("id", column(batch.IDs, i)).
				Str("question", column(batch.Questions, i)).
				Str("gold", batch.Answers[i]).
				Str("completion", completion).
				Float64("reward", scores[i]).
				Msg("correctness scored")
		}
		return scores, nil
	}
}

// parseGoldVariants parses the ground truth three ways to absorb the
// GSM8K answer format ambiguity: the raw string, the #### suffix, and
// the suffix with a percent sign appended. Failed parses stay in the
// slice as nil; verifying against them is simply false.
func parseGoldVariants(cfg CorrectnessConfig, answer string) []*mathverify.Expr {
	suffix := mathverify.ExtractHashAnswer(answer)
	return []*mathverify.Expr{
		cfg.Parse(answer),
		cfg.Parse(suffix),
		cfg.Parse(suffix + "%"),
	}
}

func scoreCorrectness(cfg CorrectnessConfig, completion string, golds []*mathverify.Expr) (score float64) {
	// The oracle is external; a panic on malformed input maps to the
	// verification-error penalty instead of aborting the batch.
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("verification panicked")
			score = PenaltyVerificationError
		}
	}()

	if content, ok := parsers.ExtractTagContent(completion, "answer", true); ok && content != "" {
		if candidate := cfg.Parse(content); candidate != nil {
			matched, err := verifyAny(cfg, golds, candidate)
			if err != nil {
				return PenaltyVerificationError
			}
			if matched {
				return RewardCorrectInAnswer
			}
			// Parsed but wrong: no fallback to <think>.
			return PenaltyIncorrectAnswer
		}
	}

	if content, ok := parsers.ExtractTagContent(completion, "think", true); ok && content != "" {
		if candidate := cfg.Parse(content); candidate != nil {
			matched, err := verifyAny(cfg, golds, candidate)
			if err != nil {
				return PenaltyVerificationError
			}
			if matched {
				return RewardCorrectInThinkOnly
			}
			return PenaltyIncorrectAnswer
		}
	}

	return 0.0
}

func verifyAny(cfg CorrectnessConfig, golds []*mathverify.Expr, candidate *mathverify.Expr) (bool, error) {
	for _, gold := range golds {
		ok, err := cfg.Verify(gold, candidate)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// column safely reads an optional metadata column
func column(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
