package sentiment

import "testing"

func TestLexiconScorerRange(t *testing.T) {
	s := NewLexiconScorer()
	cases := []string{
		"",
		"My internet is slow and this is unacceptable",
		"Thanks, that was great and very helpful",
		"neutral question about my plan",
		"terrible awful worst scam",
	}
	for _, text := range cases {
		got := s.Score(text)
		if got < -1.0 || got > 1.0 {
			t.Errorf("Score(%q) = %f out of range", text, got)
		}
	}
}

func TestLexiconScorerPolarity(t *testing.T) {
	s := NewLexiconScorer()
	if got := s.Score("Thanks, great service, very helpful"); got <= 0 {
		t.Errorf("expected positive score, got %f", got)
	}
	if got := s.Score("This is terrible, I am frustrated and overcharged"); got >= 0 {
		t.Errorf("expected negative score, got %f", got)
	}
	if got := s.Score("What is my data limit?"); got != 0 {
		t.Errorf("expected neutral score, got %f", got)
	}
}
