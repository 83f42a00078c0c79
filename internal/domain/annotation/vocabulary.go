package annotation

import "strings"

// WordMatchConfig describes one vocabulary entry: a lemma plus the set of
// surface forms that should be highlighted for it.  Matching is
// case-insensitive and purely surface-form based; no morphological analysis
// happens here.
type WordMatchConfig struct {
	Lemma string   `json:"lemma"`
	Forms []string `json:"forms"`
}

// Vocabulary is a compiled, lookup-optimised view over a WordMatchConfig
// list.  Surface forms are lower-cased once at construction so per-token
// lookups during highlighting are a single map access.
type Vocabulary struct {
	byForm map[string]string // lower-cased form → lemma
}

// CompileVocabulary builds a Vocabulary from the raw config list.  Empty
// forms are ignored.  When two configs claim the same surface form the first
// one wins, keeping the result deterministic for identical input order.
func CompileVocabulary(configs []WordMatchConfig) *Vocabulary {
	byForm := make(map[string]string)
	for _, cfg := range configs {
		for _, form := range cfg.Forms {
			f := strings.ToLower(strings.TrimSpace(form))
			if f == "" {
				continue
			}
			if _, exists := byForm[f]; !exists {
				byForm[f] = cfg.Lemma
			}
		}
	}
	return &Vocabulary{byForm: byForm}
}

// Match returns the lemma for a surface token, if any.  The token is
// lower-cased before lookup.
func (v *Vocabulary) Match(token string) (string, bool) {
	if v == nil || len(v.byForm) == 0 {
		return "", false
	}
	lemma, ok := v.byForm[strings.ToLower(token)]
	return lemma, ok
}

// Empty reports whether the vocabulary has no forms at all, letting callers
// skip the highlighting pass entirely.
func (v *Vocabulary) Empty() bool {
	return v == nil || len(v.byForm) == 0
}
