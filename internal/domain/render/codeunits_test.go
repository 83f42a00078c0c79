package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeUTF16_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "hello", "naïve café", "日本語", "A😀B"} {
		assert.Equal(t, s, EncodeUTF16(s).String())
	}
}

func TestCodeUnits_LenCountsCodeUnitsNotRunes(t *testing.T) {
	// Astral-plane characters occupy a surrogate pair, two code units.
	assert.Equal(t, 4, EncodeUTF16("A😀B").Len())
	assert.Equal(t, 3, EncodeUTF16("日本語").Len())
}

func TestCodeUnits_SliceInCodeUnitSpace(t *testing.T) {
	u := EncodeUTF16("A😀B")
	assert.Equal(t, "A", u.Slice(0, 1).String())
	assert.Equal(t, "😀", u.Slice(1, 3).String())
	assert.Equal(t, "B", u.Slice(3, 4).String())
}

func TestCodeUnits_ContainsNewline(t *testing.T) {
	assert.True(t, EncodeUTF16("a\nb").ContainsNewline())
	assert.True(t, EncodeUTF16("a\r\nb").ContainsNewline())
	assert.False(t, EncodeUTF16("a b").ContainsNewline())
	assert.False(t, EncodeUTF16("").ContainsNewline())
}

func TestCodeUnits_IsBlank(t *testing.T) {
	assert.True(t, EncodeUTF16("").IsBlank())
	assert.True(t, EncodeUTF16("  \t\n").IsBlank())
	assert.False(t, EncodeUTF16(" x ").IsBlank())
}
