package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/annotext/annotext/internal/domain/annotation"
)

// Document is the engine's input contract, exactly as handed over by the
// generation pipeline: plain text plus sentence spans, role annotations and
// the vocabulary list.  A Document is treated as immutable per render.
type Document struct {
	Text        string                       `json:"text"`
	Sentences   []annotation.Sentence        `json:"sentences"`
	Annotations []annotation.Annotation      `json:"annotations"`
	Vocabulary  []annotation.WordMatchConfig `json:"vocabulary"`
}

// Fingerprint returns a stable content hash of the document, used as the
// render-cache key.  Two documents with identical content always produce the
// same fingerprint because the tree builder itself is deterministic.
func (d Document) Fingerprint() string {
	// json.Marshal on a struct has deterministic field order.
	raw, err := json.Marshal(d)
	if err != nil {
		// Document is plain data; Marshal cannot fail on it.
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// BuildStats reports what the build pass degraded away: records dropped at
// normalization and annotations excluded because no single sentence fully
// contains them.  Callers log these at warn level; nothing here is surfaced
// to end users.
type BuildStats struct {
	Normalize     annotation.NormalizeReport
	CrossSentence int
}
