package annotation

import (
	"fmt"

	"github.com/annotext/annotext/pkg/errors"
)

// Sentence is a half-open span [Start, End) of the article text, in UTF-16
// code units.  Sentences are produced upstream, ordered by Start, and never
// overlap.  The gap between one sentence's End and the next sentence's Start
// is inter-sentence text (whitespace, paragraph breaks) owned by no sentence.
type Sentence struct {
	ID    int `json:"id"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Length returns the extent of the sentence in code units.
func (s Sentence) Length() int { return s.End - s.Start }

// Contains reports whether the annotation lies fully inside the sentence.
func (s Sentence) Contains(a Annotation) bool {
	return a.ContainedIn(s.Start, s.End)
}

// ValidateSentences checks the structural invariants of a sentence list:
// each span is non-empty and within the text, and consecutive sentences are
// ordered by Start and disjoint.  Unlike annotation records, a broken
// sentence list is a fatal input error; it cannot be degraded around because
// the whole paragraph structure hangs off it.
func ValidateSentences(sentences []Sentence, textLen int) error {
	prevEnd := 0
	for i, s := range sentences {
		if s.Start < 0 || s.End <= s.Start || s.End > textLen {
			return errors.New(errors.ErrCodeSentenceOrdering,
				fmt.Sprintf("sentence %d has invalid span [%d, %d) for text length %d", s.ID, s.Start, s.End, textLen))
		}
		if i > 0 && s.Start < prevEnd {
			return errors.New(errors.ErrCodeSentenceOrdering,
				fmt.Sprintf("sentence %d starts at %d before previous sentence ends at %d", s.ID, s.Start, prevEnd))
		}
		prevEnd = s.End
	}
	return nil
}
