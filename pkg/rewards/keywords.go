package rewards

// Tier categorizes a reasoning-indicator keyword by the sophistication
// of the reasoning move it signals: simple sequencing < generic hedge <
// explicit verification < hypothetical exploration < self-correction.
type Tier int

const (
	TierProcedural Tier = iota
	TierGeneral
	TierChecking
	TierConditional
	TierReflective
)

// Score returns the base score of the tier
func (t Tier) Score() float64 {
	switch t {
	case TierProcedural:
		return 0.15
	case TierGeneral:
		return 0.10
	case TierChecking:
		return 0.30
	case TierConditional:
		return 0.50
	case TierReflective:
		return 0.80
	default:
		return 0.0
	}
}

func (t Tier) String() string {
	switch t {
	case TierProcedural:
		return "procedural"
	case TierGeneral:
		return "general"
	case TierChecking:
		return "checking"
	case TierConditional:
		return "conditional"
	case TierReflective:
		return "reflective"
	default:
		return "unknown"
	}
}

// DefaultKeywords maps lower-case keywords and phrases to their tier.
// Matching is case-insensitive on word boundaries. Treat this as
// immutable configuration data: swap the table, not the scoring logic.
var DefaultKeywords = map[string]Tier{
	// Sequencing and connective moves.
	"first":           TierProcedural,
	"firstly":         TierProcedural,
	"second":          TierProcedural,
	"secondly":        TierProcedural,
	"next":            TierProcedural,
	"then":            TierProcedural,
	"finally":         TierProcedural,
	"to begin with":   TierProcedural,
	"in conclusion":   TierProcedural,
	"so":              TierProcedural,
	"therefore":       TierProcedural,
	"because":         TierProcedural,
	"since":           TierProcedural,
	"consequently":    TierProcedural,
	"as a result":     TierProcedural,
	"break this down": TierProcedural,
	"break it down":   TierProcedural,

	// Generic hedges and contrasts.
	"think":    TierGeneral,
	"but":      TierGeneral,
	"however":  TierGeneral,
	"yet":      TierGeneral,
	"perhaps":  TierGeneral,
	"maybe":    TierGeneral,
	"possibly": TierGeneral,

	// Explicit verification moves.
	"verify":       TierChecking,
	"check":        TierChecking,
	"let's check":  TierChecking,
	"let me check": TierChecking,
	"double-check": TierChecking,
	"examine":      TierChecking,
	"make sure":    TierChecking,

	// Hypothetical and alternative exploration.
	"if":                TierConditional,
	"what if":           TierConditional,
	"assuming":          TierConditional,
	"assumption":        TierConditional,
	"given that":        TierConditional,
	"suppose":           TierConditional,
	"alternatively":     TierConditional,
	"on the other hand": TierConditional,
	"another angle":     TierConditional,
	"instead":           TierConditional,

	// Self-correction and reconsideration.
	"wait":             TierReflective,
	"hold on":          TierReflective,
	"earlier":          TierReflective,
	"reconsider":       TierReflective,
	"rethink":          TierReflective,
	"re-evaluate":      TierReflective,
	"hmm":              TierReflective,
	"actually":         TierReflective,
	"i made a mistake": TierReflective,
}

// DefaultOpenings are the mandatory opening phrases of the raw <think>
// content, matching the generation prompt's instruction. The leading
// newline is part of the contract.
var DefaultOpenings = []string{
	"\nOkay, so I need to ",
	"\nOkay, let's ",
	"\nOkay, let me ",
}
