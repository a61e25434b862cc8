// Package mathverify is a small symbolic-equivalence oracle for math
// answers: it parses candidate strings into comparable values and
// verifies whether two parses denote the same quantity. Parsing is
// tolerant of the representations GSM8K-style models emit: \boxed{}
// LaTeX, $/$$ math delimiters, currency signs, thousands separators,
// trailing percent signs, bare arithmetic expressions and free prose
// with a final number.
package mathverify

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Expr is a parsed mathematical value. A nil *Expr is the "failed to
// parse" sentinel; Verify against it is false, never an error.
type Expr struct {
	Value float64
	Raw   string
}

const epsilon = 1e-9

var (
	lastNumberPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?%?`)
	fracPattern       = regexp.MustCompile(`^\\[dt]?frac\{(-?[\d.]+)\}\{(-?[\d.]+)\}$`)
)

// Parse interprets text as a mathematical value. It returns nil when
// no value can be extracted.
func Parse(text string) *Expr {
	raw := text
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	// A boxed final answer wins over surrounding prose.
	if boxed, ok := extractBoxed(s); ok {
		s = strings.TrimSpace(boxed)
	}
	s = stripMathDelimiters(s)
	if s == "" {
		return nil
	}

	if v, ok := parseScalar(s); ok {
		return &Expr{Value: v, Raw: raw}
	}
	if v, ok := parseFraction(s); ok {
		return &Expr{Value: v, Raw: raw}
	}
	if v, ok := evalExpression(s); ok {
		return &Expr{Value: v, Raw: raw}
	}

	// Prose fallback: the final number mentioned is taken as the answer.
	if match := lastOf(lastNumberPattern.FindAllString(s, -1)); match != "" {
		if v, ok := parseScalar(match); ok {
			return &Expr{Value: v, Raw: raw}
		}
	}
	return nil
}

// Verify reports whether two parsed values denote the same quantity.
// Either side being nil yields false.
func Verify(gold, candidate *Expr) (bool, error) {
	if gold == nil || candidate == nil {
		return false, nil
	}
	if math.IsNaN(gold.Value) || math.IsNaN(candidate.Value) {
		return false, errors.New("mathverify: parsed value is NaN")
	}
	diff := math.Abs(gold.Value - candidate.Value)
	if diff < epsilon {
		return true, nil
	}
	// Relative tolerance for large magnitudes.
	scale := math.Max(math.Abs(gold.Value), math.Abs(candidate.Value))
	return scale > 1 && diff/scale < epsilon, nil
}

// ExtractHashAnswer returns the canonical answer after the last "####"
// marker (GSM8K convention). Without a marker the input is returned
// unchanged.
func ExtractHashAnswer(text string) string {
	idx := strings.LastIndex(text, "####")
	if idx == -1 {
		return text
	}
	return strings.TrimSpace(text[idx+len("####"):])
}

// extractBoxed returns the brace-balanced content of the first
// \boxed{...} occurrence.
func extractBoxed(text string) (string, bool) {
	const marker = "\\boxed{"
	start := strings.Index(text, marker)
	if start == -1 {
		return "", false
	}
	depth := 1
	i := start + len(marker)
	for ; i < len(text) && depth > 0; i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	if depth != 0 {
		return "", false
	}
	return text[start+len(marker) : i-1], true
}

func stripMathDelimiters(s string) string {
	s = strings.TrimSpace(s)
	for _, delim := range []string{"$$", "$"} {
		for strings.HasPrefix(s, delim) && strings.HasSuffix(s, delim) && len(s) > 2*len(delim) {
			s = strings.TrimSpace(s[len(delim) : len(s)-len(delim)])
		}
	}
	return s
}

// parseScalar handles plain numbers, currency and percent forms.
func parseScalar(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	if percent {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		// LaTeX-escaped percent leaves a trailing backslash behind.
		s = strings.TrimSuffix(s, "\\")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if percent {
		v /= 100
	}
	return v, true
}

// parseFraction handles a lone LaTeX \frac{a}{b}.
func parseFraction(s string) (float64, bool) {
	m := fracPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	num, err1 := strconv.ParseFloat(m[1], 64)
	den, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// evalExpression evaluates bare arithmetic like "(3+5)*2".
func evalExpression(s string) (float64, bool) {
	if !isArithmetic(s) {
		return 0, false
	}
	expr, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return 0, false
	}
	result, err := expr.Evaluate(nil)
	if err != nil {
		return 0, false
	}
	v, ok := result.(float64)
	return v, ok
}

// isArithmetic gates govaluate to pure numeric expressions so prose
// never reaches the evaluator.
func isArithmetic(s string) bool {
	hasDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("+-*/%^(). ,", r):
		default:
			return false
		}
	}
	return hasDigit
}

func lastOf(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}
