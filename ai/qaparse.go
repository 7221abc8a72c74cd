package ai

import "strings"

// ParseQAPairs parses a vendor model response using the Q:/A: marker
// convention. The response is split into chunks starting at each "Q:"
// marker; a chunk is accepted only if a later "A:" marker follows, with
// non-empty text on both sides. Malformed chunks are silently dropped.
// This lossy-parse policy is deliberate: vendor models occasionally emit
// commentary or half-formed pairs, and dropping them beats failing the
// whole generation run.
func ParseQAPairs(raw string) []QAPair {
	chunks := strings.Split(raw, "Q:")
	if len(chunks) < 2 {
		return nil
	}

	pairs := make([]QAPair, 0, len(chunks)-1)
	for _, chunk := range chunks[1:] {
		question, answer, found := strings.Cut(chunk, "A:")
		if !found {
			continue
		}
		question = strings.TrimSpace(question)
		answer = strings.TrimSpace(answer)
		if question == "" || answer == "" {
			continue
		}
		pairs = append(pairs, QAPair{Question: question, Answer: answer})
	}
	return pairs
}
