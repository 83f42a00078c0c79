package playback

import "sort"

// WordBoundary is one TTS-reported timing record: the millisecond in the
// synthesized audio at which a word is spoken, and the span of source text
// it corresponds to.  TextOffset and LengthChars are UTF-16 code-unit
// values, matching the offset space of annotations.
type WordBoundary struct {
	AudioOffsetMs int64  `json:"audio_offset_ms"`
	DurationMs    int64  `json:"duration_ms"`
	TextOffset    int    `json:"text_offset"`
	LengthChars   int    `json:"length_chars"`
	Word          string `json:"word"`
}

// WordIndexAt returns the index of the boundary active at audio time ms:
// the greatest i with boundaries[i].AudioOffsetMs <= ms.  Returns -1 when
// the list is empty or ms precedes the first word.  Boundaries must be
// sorted by AudioOffsetMs, which TTS engines emit naturally.
func WordIndexAt(boundaries []WordBoundary, ms int64) int {
	i := sort.Search(len(boundaries), func(i int) bool { return boundaries[i].AudioOffsetMs > ms })
	return i - 1
}

// ActiveWordSpan resolves the text span spoken at audio time ms.  ok is
// false when no word is active yet.
func ActiveWordSpan(boundaries []WordBoundary, ms int64) (textOffset, length int, ok bool) {
	i := WordIndexAt(boundaries, ms)
	if i < 0 {
		return 0, 0, false
	}
	b := boundaries[i]
	return b.TextOffset, b.LengthChars, true
}
