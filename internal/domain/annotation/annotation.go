package annotation

import "sort"

// Annotation is a half-open character span [Start, End) tagging a grammatical
// role within the article's plain text.  Offsets count UTF-16 code units from
// the start of the text, exactly as produced by the generation pipeline.
type Annotation struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Role  RoleID `json:"role"`
}

// Length returns the extent of the span in code units.
func (a Annotation) Length() int { return a.End - a.Start }

// Covers reports whether the annotation fully covers the half-open segment
// [start, end).
func (a Annotation) Covers(start, end int) bool {
	return a.Start <= start && a.End >= end
}

// ContainedIn reports whether the annotation lies fully inside [start, end).
func (a Annotation) ContainedIn(start, end int) bool {
	return a.Start >= start && a.End <= end
}

// NormalizeReport summarises what normalization discarded.  Dropping is
// silent towards the end user; the report exists so operational logs can
// tell an invalid document from a merely incomplete one.
type NormalizeReport struct {
	Input        int
	Kept         int
	BadOffsets   int
	UnknownRoles int
}

// Dropped returns the total number of discarded records.
func (r NormalizeReport) Dropped() int { return r.BadOffsets + r.UnknownRoles }

// Clean reports whether every input record survived.
func (r NormalizeReport) Clean() bool { return r.Dropped() == 0 }

// Normalize validates the raw annotation list against the text length and the
// role taxonomy.  A record is discarded when its offsets are out of range
// (start < 0, end <= start, end > textLen) or its role is not in the
// registry.  Records are never repaired or clamped; a malformed record is
// dropped whole.  The returned slice preserves input order; the stable
// (start asc, end desc) sort required by the nesting resolver is applied
// downstream, not here.
func Normalize(raw []Annotation, textLen int, reg *Registry) ([]Annotation, NormalizeReport) {
	report := NormalizeReport{Input: len(raw)}
	clean := make([]Annotation, 0, len(raw))
	for _, a := range raw {
		if a.Start < 0 || a.End <= a.Start || a.End > textLen {
			report.BadOffsets++
			continue
		}
		if !reg.Known(a.Role) {
			report.UnknownRoles++
			continue
		}
		clean = append(clean, a)
	}
	report.Kept = len(clean)
	return clean, report
}

// SortForNesting stable-sorts annotations by (start asc, end desc), the order
// the nesting resolver expects: at any position the longest remaining span
// comes first.  The input slice is sorted in place and returned.
func SortForNesting(anns []Annotation) []Annotation {
	sort.SliceStable(anns, func(i, j int) bool {
		if anns[i].Start != anns[j].Start {
			return anns[i].Start < anns[j].Start
		}
		return anns[i].End > anns[j].End
	})
	return anns
}
