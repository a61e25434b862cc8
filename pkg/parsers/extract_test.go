package parsers

import (
	"testing"

	"github.com/rizome-dev/go-grpo-rewards/pkg/types"
)

func TestExtractTagContent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		tag      string
		strip    bool
		expected string
		found    bool
	}{
		{
			name:     "simple answer",
			text:     "<think>\n2+2=4\n</think>\n<answer>\n4\n</answer>",
			tag:      "answer",
			strip:    true,
			expected: "4",
			found:    true,
		},
		{
			name:     "unstripped keeps whitespace",
			text:     "<think>\nsteps\n</think>",
			tag:      "think",
			strip:    false,
			expected: "\nsteps\n",
			found:    true,
		},
		{
			name:  "missing opening tag",
			text:  "no tags at all",
			tag:   "think",
			strip: true,
			found: false,
		},
		{
			name:  "opening without closing",
			text:  "<think>never closed",
			tag:   "think",
			strip: true,
			found: false,
		},
		{
			name:  "closing before opening",
			text:  "</think>backwards<think>",
			tag:   "think",
			strip: true,
			found: false,
		},
		{
			name:     "empty content is found",
			text:     "<answer>   </answer>",
			tag:      "answer",
			strip:    true,
			expected: "",
			found:    true,
		},
		{
			name:     "first pair wins over duplicates",
			text:     "<answer>first</answer><answer>second</answer>",
			tag:      "answer",
			strip:    true,
			expected: "first",
			found:    true,
		},
		{
			name:     "closing tag matched after opening",
			text:     "prefix</answer><answer>real</answer>",
			tag:      "answer",
			strip:    true,
			expected: "real",
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractTagContent(tt.text, tt.tag, tt.strip)
			if found != tt.found {
				t.Fatalf("ExtractTagContent() found = %v, want %v", found, tt.found)
			}
			if got != tt.expected {
				t.Errorf("ExtractTagContent() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompletionsToList(t *testing.T) {
	completions := []types.Completion{
		types.NewCompletion("plain text"),
		types.NewChatCompletion(types.Message{Role: "assistant", Content: "chat text"}),
		types.NewCompletion(""),
	}

	got := CompletionsToList(completions)
	if len(got) != len(completions) {
		t.Fatalf("CompletionsToList() length = %d, want %d", len(got), len(completions))
	}

	expected := []string{"plain text", "chat text", ""}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("CompletionsToList()[%d] = %q, want %q", i, got[i], want)
		}
	}
}

func TestScanTags(t *testing.T) {
	scan := ScanTags("<think>\nT\n</think>\n<answer>\nA\n</answer>")

	if !scan.ThinkOpen.Once() || scan.ThinkOpen.First != 0 {
		t.Errorf("unexpected think open stat: %+v", scan.ThinkOpen)
	}
	if !scan.ThinkPairOrdered() {
		t.Error("expected think pair to be ordered")
	}
	if !scan.AnswerPairOrdered() {
		t.Error("expected answer pair to be ordered")
	}
	if !scan.BlocksOrdered() {
		t.Error("expected blocks to be ordered")
	}
}

func TestScanTags_Duplicates(t *testing.T) {
	scan := ScanTags("<think><think>\nT\n</think>")

	if scan.ThinkOpen.Count != 2 {
		t.Errorf("think open count = %d, want 2", scan.ThinkOpen.Count)
	}
	if scan.ThinkPairOrdered() {
		t.Error("duplicated opening tag must not form an ordered pair")
	}
	if scan.AnswerOpen.Present() {
		t.Error("answer tag should be absent")
	}
	if scan.AnswerOpen.First != -1 {
		t.Errorf("absent tag first index = %d, want -1", scan.AnswerOpen.First)
	}
}

func TestScanTags_Misordered(t *testing.T) {
	scan := ScanTags("</think>backwards<think>")

	if !scan.ThinkOpen.Once() || !scan.ThinkClose.Once() {
		t.Fatalf("expected both tags once: %+v", scan)
	}
	if scan.ThinkPairOrdered() {
		t.Error("close-before-open must not be ordered")
	}
}
