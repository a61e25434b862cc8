package rewards

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rizome-dev/go-grpo-rewards/pkg/parsers"
)

// Reasoning reward shaping. The scale factor is chosen so a good
// response lands near the cap; the stuffing penalties ramp smoothly
// above their thresholds to block keyword-repetition reward hacking.
const (
	reasoningOpeningPenalty = -0.5
	reasoningScaleFactor    = 0.3
	reasoningMaxReward      = 2.5
	reasoningMinScore       = -1.0

	diversityBonusScale = 0.2
	volumeBonusScale    = 0.05

	densityThreshold    = 0.20
	densityPenaltyScale = 20.0

	repetitionThreshold    = 0.30
	repetitionPenaltyScale = 40.0
	// Below this many total occurrences the most-repeated share is
	// dominated by noise, so the repetition penalty stays off.
	repetitionMinOccurrences = 5
)

// ReasoningConfig injects the keyword table and opening phrases
type ReasoningConfig struct {
	Keywords map[string]Tier
	Openings []string
}

// DefaultReasoningConfig uses the built-in keyword table
func DefaultReasoningConfig() ReasoningConfig {
	return ReasoningConfig{
		Keywords: DefaultKeywords,
		Openings: DefaultOpenings,
	}
}

// ReasoningReward scores the batch with the default configuration
var ReasoningReward = NewReasoningReward(DefaultReasoningConfig())

type keywordPattern struct {
	keyword string
	tier    Tier
	pattern *regexp.Regexp
}

// NewReasoningReward builds the reasoning-quality reward: tiered
// keyword usage in the <think> block with diversity and volume
// bonuses, density and repetition stuffing penalties, and a mandatory
// opening-phrase check on the raw content.
func NewReasoningReward(cfg ReasoningConfig) RewardFunc {
	patterns := compileKeywords(cfg.Keywords)

	return func(batch Batch) ([]float64, error) {
		completions := parsers.CompletionsToList(batch.Completions)
		scores := make([]float64, len(completions))
		for i, completion := range completions {
			scores[i] = scoreReasoning(cfg, patterns, completion)
		}
		return scores, nil
	}
}

func compileKeywords(keywords map[string]Tier) []keywordPattern {
	// Deterministic order keeps scoring reproducible regardless of map
	// iteration.
	names := make([]string, 0, len(keywords))
	for kw := range keywords {
		names = append(names, kw)
	}
	sort.Strings(names)

	patterns := make([]keywordPattern, 0, len(names))
	for _, kw := range names {
		patterns = append(patterns, keywordPattern{
			keyword: kw,
			tier:    keywords[kw],
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}
	return patterns
}

func scoreReasoning(cfg ReasoningConfig, patterns []keywordPattern, completion string) float64 {
	// The opening check needs the unstripped content: the required
	// phrases begin with the newline after <think>.
	rawContent, ok := parsers.ExtractTagContent(completion, "think", false)
	if !ok {
		return 0.0
	}

	openingPenalty := reasoningOpeningPenalty
	for _, opening := range cfg.Openings {
		if strings.HasPrefix(rawContent, opening) {
			openingPenalty = 0.0
			break
		}
	}

	sumTiered := 0.0
	uniqueCount := 0
	totalCount := 0
	maxRepeat := 0
	for _, kp := range patterns {
		occurrences := len(kp.pattern.FindAllStringIndex(rawContent, -1))
		if occurrences == 0 {
			continue
		}
		uniqueCount++
		totalCount += occurrences
		sumTiered += kp.tier.Score()
		if occurrences > maxRepeat {
			maxRepeat = occurrences
		}
	}

	positive := sumTiered +
		diversityBonusScale*math.Log(1+float64(uniqueCount)) +
		volumeBonusScale*math.Log(1+float64(totalCount))

	penalty := 0.0
	if words := len(strings.Fields(rawContent)); words > 0 && totalCount > 0 {
		density := float64(totalCount) / float64(words)
		if excess := density - densityThreshold; excess > 0 {
			penalty += densityPenaltyScale * excess * excess
		}
	}
	if totalCount >= repetitionMinOccurrences {
		share := float64(maxRepeat) / float64(totalCount)
		if excess := share - repetitionThreshold; excess > 0 {
			penalty += repetitionPenaltyScale * excess * excess
		}
	}

	scaled := reasoningScaleFactor * (positive - penalty)
	scaled = math.Max(0.0, math.Min(scaled, reasoningMaxReward))

	// The opening penalty is additive, not a short-circuit, so the
	// keyword gradient survives a wrong opening.
	final := scaled + openingPenalty
	if final < reasoningMinScore {
		final = reasoningMinScore
	}

	log.Trace().
		Int("unique", uniqueCount).
		Int("total", totalCount).
		Float64("penalty", penalty).
		Float64("reward", final).
		Msg("reasoning scored")

	return final
}
