package render

import (
	"github.com/annotext/annotext/internal/domain/annotation"
)

// BuildDocument runs the full render pipeline: normalize annotations,
// partition the text into paragraphs along sentence gaps, resolve nesting
// per sentence, and interleave vocabulary highlights.  The only error path
// is a structurally broken sentence list; malformed annotations degrade by
// omission and are reported through BuildStats instead.
func BuildDocument(doc Document, reg *annotation.Registry) ([]Paragraph, BuildStats, error) {
	units := EncodeUTF16(doc.Text)
	textLen := units.Len()

	var stats BuildStats

	if err := annotation.ValidateSentences(doc.Sentences, textLen); err != nil {
		return nil, stats, err
	}

	clean, report := annotation.Normalize(doc.Annotations, textLen, reg)
	stats.Normalize = report

	perSentence, crossed := assignToSentences(clean, doc.Sentences)
	stats.CrossSentence = crossed

	vocab := annotation.CompileVocabulary(doc.Vocabulary)

	var (
		paragraphs []Paragraph
		current    Paragraph
	)
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, current)
			current = nil
		}
	}

	prevEnd := 0
	for i, sent := range doc.Sentences {
		if sent.Start > prevEnd {
			gap := units.Slice(prevEnd, sent.Start)
			if gap.ContainsNewline() {
				flush()
			} else if !gap.IsBlank() {
				current = append(current, TextNode(gap.String()))
			}
		}

		local := localize(perSentence[i], sent.Start)
		children := ResolveNesting(units.Slice(sent.Start, sent.End), local, reg)
		current = append(current, SentenceNode(sent.ID, children))
		prevEnd = sent.End
	}

	// Trailing text after the last sentence follows the same gap rule.
	if prevEnd < textLen {
		tail := units.Slice(prevEnd, textLen)
		if !tail.ContainsNewline() && !tail.IsBlank() {
			current = append(current, TextNode(tail.String()))
		}
	}
	flush()

	if !vocab.Empty() {
		for i := range paragraphs {
			paragraphs[i] = Highlight(paragraphs[i], vocab)
		}
	}

	return paragraphs, stats, nil
}

// assignToSentences buckets annotations by the sentence that fully contains
// them.  An annotation contained in no single sentence (it spans a boundary,
// or lives in inter-sentence text) is excluded from structural nesting
// entirely and counted; it is not reassigned to the sentence holding its
// start offset.
func assignToSentences(anns []annotation.Annotation, sentences []annotation.Sentence) (map[int][]annotation.Annotation, int) {
	perSentence := make(map[int][]annotation.Annotation, len(sentences))
	crossed := 0
	for _, a := range anns {
		placed := false
		for i, s := range sentences {
			if s.Contains(a) {
				perSentence[i] = append(perSentence[i], a)
				placed = true
				break
			}
		}
		if !placed {
			crossed++
		}
	}
	return perSentence, crossed
}

// localize shifts annotation offsets to be relative to the sentence start.
func localize(anns []annotation.Annotation, offset int) []annotation.Annotation {
	if len(anns) == 0 {
		return nil
	}
	local := make([]annotation.Annotation, len(anns))
	for i, a := range anns {
		local[i] = annotation.Annotation{Start: a.Start - offset, End: a.End - offset, Role: a.Role}
	}
	return local
}
