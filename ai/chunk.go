package ai

import "strings"

// SplitChunks splits document text into paragraph chunks for per-chunk vendor
// generation. Paragraphs are separated by blank lines; chunks shorter than
// minChars or longer than maxChars are skipped, since very short fragments
// produce trivial questions and oversized ones blow the prompt budget.
func SplitChunks(text string, minChars, maxChars int) []string {
	paragraphs := strings.Split(text, "\n\n")
	chunks := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = scrubChunk(p)
		if len(p) < minChars || len(p) > maxChars {
			continue
		}
		chunks = append(chunks, p)
	}
	return chunks
}

// scrubChunk trims whitespace and strips control characters that PDF
// extraction tends to leave behind.
func scrubChunk(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < ' ' && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
