// Package parsers extracts structured regions from model responses
// that follow the <think>/<answer> output contract.
package parsers

import (
	"strings"

	"github.com/rizome-dev/go-grpo-rewards/pkg/types"
)

// CompletionsToList normalizes a batch of completions into plain
// response strings, preserving order and length.
func CompletionsToList(completions []types.Completion) []string {
	out := make([]string, len(completions))
	for i, c := range completions {
		out[i] = c.Content()
	}
	return out
}

// ExtractTagContent returns the content between the first occurrence of
// <tag> and the first occurrence of </tag> after it. The second return
// value is false when either tag is absent or the closing tag does not
// follow the opening tag; "no content" is distinct from tags that are
// present with only whitespace between them.
//
// Only the first pair takes part in extraction. Later duplicate tags
// are ignored here; duplicates are the format reward's concern.
func ExtractTagContent(text, tag string, strip bool) (string, bool) {
	openTag := "<" + tag + ">"
	closeTag := "</" + tag + ">"

	start := strings.Index(text, openTag)
	if start == -1 {
		return "", false
	}
	start += len(openTag)

	end := strings.Index(text[start:], closeTag)
	if end == -1 {
		return "", false
	}

	content := text[start : start+end]
	if strip {
		content = strings.TrimSpace(content)
	}
	return content, true
}

// FormatBlock returns the canonical response skeleton the rewards score
// against, suitable for embedding in prompts.
func FormatBlock() string {
	return "<think>\n...\n</think>\n<answer>\n...\n</answer>"
}
