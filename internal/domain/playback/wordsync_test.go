package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleBoundaries() []WordBoundary {
	return []WordBoundary{
		{AudioOffsetMs: 0, DurationMs: 300, TextOffset: 0, LengthChars: 3, Word: "The"},
		{AudioOffsetMs: 350, DurationMs: 250, TextOffset: 4, LengthChars: 3, Word: "fox"},
		{AudioOffsetMs: 700, DurationMs: 400, TextOffset: 8, LengthChars: 4, Word: "runs"},
	}
}

func TestWordIndexAt(t *testing.T) {
	b := sampleBoundaries()
	assert.Equal(t, 0, WordIndexAt(b, 0))
	assert.Equal(t, 0, WordIndexAt(b, 349))
	assert.Equal(t, 1, WordIndexAt(b, 350))
	assert.Equal(t, 1, WordIndexAt(b, 699))
	assert.Equal(t, 2, WordIndexAt(b, 700))
	assert.Equal(t, 2, WordIndexAt(b, 5000))
	assert.Equal(t, -1, WordIndexAt(b, -1))
	assert.Equal(t, -1, WordIndexAt(nil, 100))
}

func TestActiveWordSpan(t *testing.T) {
	b := sampleBoundaries()

	off, length, ok := ActiveWordSpan(b, 400)
	assert.True(t, ok)
	assert.Equal(t, 4, off)
	assert.Equal(t, 3, length)

	_, _, ok = ActiveWordSpan(b, -10)
	assert.False(t, ok)

	_, _, ok = ActiveWordSpan(nil, 100)
	assert.False(t, ok)
}
