// Package sentiment scores query text on a [-1, 1] polarity scale.
package sentiment

import "strings"

// Scorer is the collaborator interface the query logger depends on.
type Scorer interface {
	// Score returns a polarity in [-1.0, 1.0].
	Score(text string) float64
}

// LexiconScorer is a small keyword-based scorer. It exists so the pipeline
// always has a working sentiment source; a hosted model can be plugged in
// behind the same interface.
type LexiconScorer struct{}

var _ Scorer = (*LexiconScorer)(nil)

// NewLexiconScorer creates the default scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

var positiveWords = []string{
	"thanks", "thank", "great", "good", "love", "excellent", "happy",
	"appreciate", "awesome", "perfect", "helpful",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "angry", "frustrated", "annoyed", "slow",
	"broken", "worst", "cancel", "complaint", "ridiculous", "unacceptable",
	"overcharged", "scam",
}

// Score counts polarity keywords and normalizes into [-1, 1].
func (s *LexiconScorer) Score(text string) float64 {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	var pos, neg int
	for _, w := range words {
		for _, p := range positiveWords {
			if w == p {
				pos++
				break
			}
		}
		for _, n := range negativeWords {
			if w == n {
				neg++
				break
			}
		}
	}

	total := pos + neg
	if total == 0 {
		return 0
	}
	score := float64(pos-neg) / float64(total)
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}
