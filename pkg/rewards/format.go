package rewards

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rizome-dev/go-grpo-rewards/pkg/parsers"
)

// Format reward weights. The score is additive over independent
// structural checks and floored; there is no explicit upper cap.
const (
	rTagExistsOnce      = 0.10
	rCorrectPairOrder   = 0.05
	rCorrectBlockOrder  = 0.05
	rNewlineAfterOpen   = 0.05
	rNewlineBeforeClose = 0.05
	rNewlineBetween     = 0.10
	rPerfectMatch       = 0.20

	rLatexDelimPair    = 0.10
	rLatexBoxed        = 0.10
	rLatexNewlineOpen  = 0.05
	rLatexNewlineClose = 0.05
	rLatexPerfectBlock = 0.20

	pTagDuplicated         = -0.20 // per duplicate occurrence
	pOrderViolation        = -0.15
	pContentOutsideBase    = -0.10
	pContentOutsidePerChar = -0.005
	pEmptyContent          = -0.20

	formatRewardFloor = -1.5
)

// perfectPattern is the exact target shape used in the generation
// prompts. Anchored at end of text, so a trailing newline after
// </answer> fails the match.
var perfectPattern = regexp.MustCompile(
	`^<think>\n\s*\S[\s\S]*?\n</think>\n<answer>\n\s*\S[\s\S]*?\n</answer>$`)

// FormatReward scores adherence to the <think>/<answer> response
// contract: tag cardinality and order, whitespace shape, stray
// content, and the optional $$...\boxed{}...$$ answer sub-structure.
// Malformed structure is the signal being quantified, never an error.
func FormatReward(batch Batch) ([]float64, error) {
	return formatReward(batch, false)
}

// FormatRewardDebug scores like FormatReward and logs the component
// breakdown of every completion.
func FormatRewardDebug(batch Batch) ([]float64, error) {
	return formatReward(batch, true)
}

func formatReward(batch Batch, debug bool) ([]float64, error) {
	completions := parsers.CompletionsToList(batch.Completions)
	scores := make([]float64, len(completions))
	for i, response := range completions {
		parts := scoreFormat(response)
		scores[i] = parts.total()
		if debug {
			log.Debug().
				Float64("cardinality", parts.cardinality).
				Float64("order", parts.order).
				Float64("extraneous", parts.extraneous).
				Float64("internal", parts.internal).
				Float64("latex", parts.latex).
				Float64("perfect", parts.perfect).
				Float64("total", scores[i]).
				Msg("format breakdown")
		}
	}
	return scores, nil
}

type formatParts struct {
	cardinality float64
	order       float64
	extraneous  float64
	internal    float64
	latex       float64
	perfect     float64
}

func (p formatParts) total() float64 {
	sum := p.cardinality + p.order + p.extraneous + p.internal + p.latex + p.perfect
	if sum < formatRewardFloor {
		return formatRewardFloor
	}
	return sum
}

func scoreFormat(response string) formatParts {
	scan := parsers.ScanTags(response)
	var parts formatParts

	// 1. Tag cardinality: each tag type exactly once, duplicates
	// penalized per extra occurrence.
	for _, stat := range scan.Stats() {
		switch {
		case stat.Once():
			parts.cardinality += rTagExistsOnce
		case stat.Count > 1:
			parts.cardinality += pTagDuplicated * float64(stat.Count-1)
		}
	}

	// 2. Pairwise order.
	parts.order += pairOrderScore(scan.ThinkOpen, scan.ThinkClose)
	parts.order += pairOrderScore(scan.AnswerOpen, scan.AnswerClose)

	// 3. Block order, only judged once both pairs are well formed.
	if scan.ThinkPairOrdered() && scan.AnswerPairOrdered() {
		if scan.ThinkClose.First < scan.AnswerOpen.First {
			parts.order += rCorrectBlockOrder
		} else {
			parts.order += pOrderViolation
		}
	}

	parts.extraneous = extraneousContentPenalty(response, scan)
	parts.internal = internalFormattingScore(response, scan)

	if scan.AnswerPairOrdered() {
		parts.latex = latexBlockBonus(rawAnswerContent(response, scan))
	}

	// Strict perfect shape: the pattern anchors at end of text and the
	// response must literally end with the closing tag, so the
	// trailing-newline variant earns nothing.
	if perfectPattern.MatchString(response) && strings.HasSuffix(response, parsers.TagAnswerClose) {
		parts.perfect = rPerfectMatch
	}

	return parts
}

func pairOrderScore(open, close parsers.TagStat) float64 {
	if !open.Once() || !close.Once() {
		return 0
	}
	if open.First < close.First {
		return rCorrectPairOrder
	}
	return pOrderViolation
}

// extraneousContentPenalty charges for non-whitespace content outside
// the two blocks: before <think>, after </answer>, and between
// </think> and <answer> when the block order is valid.
func extraneousContentPenalty(response string, scan parsers.TagScan) float64 {
	penalty := 0.0

	junk := func(segment string) float64 {
		stripped := strings.TrimSpace(segment)
		if stripped == "" {
			return 0
		}
		return pContentOutsideBase + pContentOutsidePerChar*float64(len(stripped))
	}

	if scan.ThinkOpen.Present() && scan.ThinkOpen.First > 0 {
		penalty += junk(response[:scan.ThinkOpen.First])
	}
	if scan.AnswerClose.Present() {
		after := scan.AnswerClose.First + len(parsers.TagAnswerClose)
		if after < len(response) {
			penalty += junk(response[after:])
		}
	}
	if scan.BlocksOrdered() {
		between := response[scan.ThinkClose.First+len(parsers.TagThinkClose) : scan.AnswerOpen.First]
		penalty += junk(between)
	}

	return penalty
}

// internalFormattingScore rewards the newline shape inside valid
// blocks and penalizes whitespace-only content.
func internalFormattingScore(response string, scan parsers.TagScan) float64 {
	score := 0.0

	if scan.ThinkPairOrdered() {
		content := response[scan.ThinkOpen.First+len(parsers.TagThinkOpen) : scan.ThinkClose.First]
		score += blockNewlineScore(content)
		if strings.TrimSpace(content) == "" {
			score += pEmptyContent
		}
	}

	if scan.AnswerPairOrdered() {
		content := rawAnswerContent(response, scan)
		score += blockNewlineScore(content)
		if strings.TrimSpace(content) == "" && !hasQualifyingLatexBlock(content) {
			score += pEmptyContent
		}
	}

	if scan.BlocksOrdered() {
		between := response[scan.ThinkClose.First+len(parsers.TagThinkClose) : scan.AnswerOpen.First]
		if strings.TrimSpace(between) == "" && strings.Contains(between, "\n") {
			score += rNewlineBetween
		}
	}

	return score
}

func blockNewlineScore(content string) float64 {
	score := 0.0
	if strings.HasPrefix(content, "\n") {
		score += rNewlineAfterOpen
	}
	if strings.HasSuffix(content, "\n") {
		score += rNewlineBeforeClose
	}
	return score
}

func rawAnswerContent(response string, scan parsers.TagScan) string {
	return response[scan.AnswerOpen.First+len(parsers.TagAnswerOpen) : scan.AnswerClose.First]
}

// latexBlockBonus rewards a $$...$$ display block wrapping a \boxed{}
// final answer inside the raw answer content. Component bonuses stack,
// and hitting all four earns the perfect-block bonus on top.
func latexBlockBonus(content string) float64 {
	first := strings.Index(content, "$$")
	if first == -1 {
		return 0
	}
	last := strings.LastIndex(content, "$$")
	if last == first {
		return 0 // single delimiter, no pair
	}

	inner := content[first+2 : last]
	if !strings.Contains(inner, "\\boxed{") {
		return 0
	}

	bonus := rLatexDelimPair + rLatexBoxed
	newlineAfterOpen := strings.HasPrefix(inner, "\n")
	newlineBeforeClose := strings.HasSuffix(inner, "\n")
	if newlineAfterOpen {
		bonus += rLatexNewlineOpen
	}
	if newlineBeforeClose {
		bonus += rLatexNewlineClose
	}
	if newlineAfterOpen && newlineBeforeClose {
		bonus += rLatexPerfectBlock
	}
	return bonus
}

// hasQualifyingLatexBlock reports whether the raw answer content holds
// a $$ pair with \boxed{} inside, which exempts it from the
// empty-content penalty.
func hasQualifyingLatexBlock(content string) bool {
	first := strings.Index(content, "$$")
	last := strings.LastIndex(content, "$$")
	return first != -1 && last > first && strings.Contains(content[first+2:last], "\\boxed{")
}
