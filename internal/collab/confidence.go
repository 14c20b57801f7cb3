package collab

import (
	"strings"
	"unicode/utf8"
)

// Confidence scores are clamped to this range.
const (
	minConfidence = 25
	maxConfidence = 95
)

// confidence marker groups. Each group contributes its delta once if any
// of its phrases appears anywhere in the text; position is irrelevant.
var confidenceMarkers = []struct {
	delta   int
	phrases []string
}{
	{+15, []string{"definitely", "clearly"}},
	{+10, []string{"evidence", "data"}},
	{+10, []string{"research", "studies"}},
	{-10, []string{"might", "possibly"}},
	{-15, []string{"uncertain", "not sure"}},
	{-5, []string{"I think", "probably"}},
}

// detailLengthThreshold rewards responses longer than this many characters.
const detailLengthThreshold = 800

// EstimateConfidence scores a response text heuristically, returning a
// value in [25, 95]. This is a lexical heuristic, not semantic judgment:
// it counts marker phrases and length, nothing more. Matching is
// case-sensitive: "Definitely" and "DEFINITELY" do not count.
func EstimateConfidence(text string) int {
	score := 50
	for _, m := range confidenceMarkers {
		for _, p := range m.phrases {
			if strings.Contains(text, p) {
				score += m.delta
				break
			}
		}
	}
	if utf8.RuneCountInString(text) > detailLengthThreshold {
		score += 10
	}

	if score < minConfidence {
		score = minConfidence
	}
	if score > maxConfidence {
		score = maxConfidence
	}
	return score
}
