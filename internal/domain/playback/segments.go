package playback

import "github.com/annotext/annotext/internal/domain/render"

// AudioSegment is one narration unit: a sentence's plain text plus enough
// layout context for the narrator to insert a paragraph pause.
type AudioSegment struct {
	SentenceID     int    `json:"sentence_id"`
	Text           string `json:"text"`
	IsNewParagraph bool   `json:"is_new_paragraph"`
}

// SegmentsFromParagraphs flattens a rendered document into the narration
// queue.  Only sentence nodes become segments; inter-sentence gap text is
// layout, not speech.  The first sentence of each paragraph after the first
// is flagged so synthesis can add a pause.
func SegmentsFromParagraphs(paragraphs []render.Paragraph) []AudioSegment {
	var segments []AudioSegment
	for pi, p := range paragraphs {
		firstInParagraph := true
		for _, n := range p {
			if n.Kind != render.NodeSentence {
				continue
			}
			segments = append(segments, AudioSegment{
				SentenceID:     n.SentenceID,
				Text:           n.PlainText(),
				IsNewParagraph: pi > 0 && firstInParagraph,
			})
			firstInParagraph = false
		}
	}
	return segments
}
