package parsers

import "strings"

// Structural tags of the response format.
const (
	TagThinkOpen   = "<think>"
	TagThinkClose  = "</think>"
	TagAnswerOpen  = "<answer>"
	TagAnswerClose = "</answer>"
)

// TagStat records the first-occurrence index of a tag (-1 if absent)
// and how many times it appears in total.
type TagStat struct {
	First int
	Count int
}

// Present reports whether the tag occurs at least once
func (s TagStat) Present() bool {
	return s.Count > 0
}

// Once reports whether the tag occurs exactly once
func (s TagStat) Once() bool {
	return s.Count == 1
}

// TagScan holds the positional bookkeeping for one response: first
// index and count of each structural tag. The format reward walks this
// instead of matching the whole response with a single pattern.
type TagScan struct {
	ThinkOpen   TagStat
	ThinkClose  TagStat
	AnswerOpen  TagStat
	AnswerClose TagStat
}

// ScanTags scans a response for the four structural tags
func ScanTags(text string) TagScan {
	stat := func(tag string) TagStat {
		return TagStat{
			First: strings.Index(text, tag),
			Count: strings.Count(text, tag),
		}
	}
	return TagScan{
		ThinkOpen:   stat(TagThinkOpen),
		ThinkClose:  stat(TagThinkClose),
		AnswerOpen:  stat(TagAnswerOpen),
		AnswerClose: stat(TagAnswerClose),
	}
}

// Stats returns the four tag stats in document order
func (s TagScan) Stats() []TagStat {
	return []TagStat{s.ThinkOpen, s.ThinkClose, s.AnswerOpen, s.AnswerClose}
}

// ThinkPairOrdered reports whether <think> and </think> each appear
// exactly once with the opening tag first.
func (s TagScan) ThinkPairOrdered() bool {
	return s.ThinkOpen.Once() && s.ThinkClose.Once() && s.ThinkOpen.First < s.ThinkClose.First
}

// AnswerPairOrdered reports whether <answer> and </answer> each appear
// exactly once with the opening tag first.
func (s TagScan) AnswerPairOrdered() bool {
	return s.AnswerOpen.Once() && s.AnswerClose.Once() && s.AnswerOpen.First < s.AnswerClose.First
}

// BlocksOrdered reports whether both pairs are well formed and the
// think block closes before the answer block opens.
func (s TagScan) BlocksOrdered() bool {
	return s.ThinkPairOrdered() && s.AnswerPairOrdered() && s.ThinkClose.First < s.AnswerOpen.First
}
