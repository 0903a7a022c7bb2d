// Package sentiment scores free text with a small fixed lexicon.
package sentiment

import "strings"

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful",
	"fantastic", "love", "perfect", "outstanding",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "hate",
	"worst", "disappointing", "poor", "useless",
}

// Score returns (P-N)/(P+N) in [-1, 1], where P and N count the lexicon words
// found as substrings of the lowercased text. Each word counts at most once.
// Text with no lexicon words scores 0.
func Score(text string) float64 {
	lower := strings.ToLower(text)
	positive := countHits(lower, positiveWords)
	negative := countHits(lower, negativeWords)
	if positive+negative == 0 {
		return 0
	}
	return float64(positive-negative) / float64(positive+negative)
}

func countHits(text string, words []string) int {
	hits := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			hits++
		}
	}
	return hits
}
