// Package render turns a validated article document (text, sentence spans,
// grammatical-role annotations, vocabulary list) into a well-formed render
// tree, and serializes that tree to attribute-tagged markup.  The whole
// package is pure: identical input always produces a structurally identical
// tree, and nothing here performs I/O or returns errors for malformed
// annotations (those are degraded away upstream, at normalization).
package render

import "unicode/utf16"

// CodeUnits is article text in UTF-16 code units.  The generation pipeline
// computes annotation and sentence offsets in UTF-16, so all span arithmetic
// in this package happens in code-unit space; converting back to a Go string
// only happens when a text leaf is materialised.  Slicing by byte or rune
// index instead would silently shift every offset in texts containing
// non-BMP characters.
type CodeUnits []uint16

// EncodeUTF16 converts a Go string into UTF-16 code units.
func EncodeUTF16(s string) CodeUnits {
	return CodeUnits(utf16.Encode([]rune(s)))
}

// String decodes the code units back into a Go string.
func (u CodeUnits) String() string {
	return string(utf16.Decode(u))
}

// Len returns the number of code units.
func (u CodeUnits) Len() int { return len(u) }

// Slice returns the half-open sub-range [start, end) without copying.
func (u CodeUnits) Slice(start, end int) CodeUnits {
	return u[start:end]
}

// ContainsNewline reports whether the range holds a LF or CR code unit.
// Used by the segmenter to detect paragraph boundaries in inter-sentence gaps.
func (u CodeUnits) ContainsNewline() bool {
	for _, cu := range u {
		if cu == '\n' || cu == '\r' {
			return true
		}
	}
	return false
}

// IsBlank reports whether the range holds only ASCII whitespace.
func (u CodeUnits) IsBlank() bool {
	for _, cu := range u {
		switch cu {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
