package playback

import (
	"testing"

	apperrors "github.com/annotext/annotext/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeline_RejectsEmpty(t *testing.T) {
	_, err := NewTimeline(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTimelineEmpty))
}

func TestNewTimeline_RejectsNonIncreasing(t *testing.T) {
	for _, starts := range [][]int64{
		{0, 5000, 5000},
		{0, 5000, 4000},
	} {
		_, err := NewTimeline(starts)
		assert.Error(t, err)
	}
}

func TestTimelineFromDurations(t *testing.T) {
	tl, err := TimelineFromDurations([]int64{5000, 7000, 3000})
	require.NoError(t, err)
	require.Equal(t, 3, tl.Len())
	for i, want := range []int64{0, 5000, 12000} {
		got, err := tl.StartOf(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestTimeline_StartOfOutOfRange(t *testing.T) {
	tl, err := NewTimeline([]int64{0, 5000})
	require.NoError(t, err)
	for _, i := range []int{-1, 2} {
		_, err := tl.StartOf(i)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSentenceIndexRange))
	}
}

func TestTimeline_SentenceIndexAt(t *testing.T) {
	tl, err := NewTimeline([]int64{0, 5000, 12000})
	require.NoError(t, err)

	cases := []struct {
		ms   int64
		want int
	}{
		{0, 0},
		{1, 0},
		{4999, 0},
		{5000, 1},
		{11999, 1},
		{12000, 2},
		{999999, 2},
		{-50, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tl.SentenceIndexAt(c.ms), "probe %dms", c.ms)
	}
}
