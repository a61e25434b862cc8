package rewards

import (
	"math"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"

	"github.com/rizome-dev/go-grpo-rewards/pkg/parsers"
)

// Length shaping defaults: a logistic curve over the think-block token
// count that is ~1.0 at the center length, ~1.76 at 1000 tokens and
// saturates toward the maximum instead of reversing. An earlier
// logarithmic design with an explicit excess-length penalty was
// superseded by this curve.
const (
	LengthMaxReward        = 2.0
	LengthTargetCenter     = 750.0
	LengthSteepness        = 0.008
	lengthExpOverflowLimit = 700.0
)

// LengthConfig holds the tunable shaping parameters
type LengthConfig struct {
	MaxReward   float64
	Center      float64
	Steepness   float64
	CountTokens func(string) int
}

// DefaultLengthConfig uses the final training constants and the BPE
// token counter.
func DefaultLengthConfig() LengthConfig {
	return LengthConfig{
		MaxReward:   LengthMaxReward,
		Center:      LengthTargetCenter,
		Steepness:   LengthSteepness,
		CountTokens: CountTokens,
	}
}

// LengthReward scores the batch with the default configuration
var LengthReward = NewLengthReward(DefaultLengthConfig())

// NewLengthReward builds a length reward over the <think> block token
// count. Missing or empty think content scores exactly 0.0; the output
// is clamped to [0, MaxReward].
func NewLengthReward(cfg LengthConfig) RewardFunc {
	return func(batch Batch) ([]float64, error) {
		completions := parsers.CompletionsToList(batch.Completions)
		scores := make([]float64, len(completions))
		for i, completion := range completions {
			scores[i] = scoreLength(cfg, completion)
		}
		return scores, nil
	}
}

func scoreLength(cfg LengthConfig, completion string) (score float64) {
	// A failure scoring one completion must not abort the batch.
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("length scoring panicked")
			score = 0.0
		}
	}()

	content, ok := parsers.ExtractTagContent(completion, "think", true)
	if !ok || content == "" {
		return 0.0
	}

	length := float64(cfg.CountTokens(content))

	// Guard the exponential against overflow and clamp toward the
	// matching asymptote.
	exponent := -cfg.Steepness * (length - cfg.Center)
	switch {
	case exponent > lengthExpOverflowLimit:
		return 0.0
	case exponent < -lengthExpOverflowLimit:
		return cfg.MaxReward
	}

	score = cfg.MaxReward / (1.0 + math.Exp(exponent))
	return math.Max(0.0, math.Min(score, cfg.MaxReward))
}

var (
	bpeOnce    sync.Once
	bpeEncoder *tiktoken.Tiktoken
)

// CountTokens counts tokens with the cl100k_base BPE encoding. When
// the encoding cannot be loaded it degrades to the chars/4 heuristic.
func CountTokens(text string) int {
	bpeOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			log.Warn().Err(err).Msg("cl100k_base unavailable, falling back to chars/4")
			return
		}
		bpeEncoder = enc
	})

	if bpeEncoder == nil {
		return len(text) / 4
	}
	return len(bpeEncoder.EncodeOrdinary(text))
}
