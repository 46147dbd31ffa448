package genimage

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVG(t *testing.T) {
	target := randomTarget(10, 8, 1)
	first := Replay(target, []Triangle{
		NewTriangle(image.Pt(-5, -5), image.Pt(15, -5), image.Pt(5, 15), 200),
	})
	second := first.Clone()
	second.Add(NewTriangle(image.Pt(1, 1), image.Pt(8, 2), image.Pt(3, 7), 17), target)

	var buf bytes.Buffer
	s := NewSVG(&buf)
	s.Title = "lena.png"

	for gen, best := range []*Specimen{first, first, second, second} {
		require.NoError(t, s.Draw(Frame{Generation: gen, Best: best, Target: target}))
	}
	require.NoError(t, s.Close())

	out := buf.String()
	assert.Contains(t, out, `width="10" height="8"`)
	assert.Contains(t, out, "fill:#000")
	assert.Contains(t, out, "<title>lena.png</title>")
	assert.Equal(t, 2, strings.Count(out, "<polygon"))
	assert.Equal(t, 2, strings.Count(out, "opacity:0.5"))
	assert.Contains(t, out, "fill:rgb(200,200,200)")
	assert.Contains(t, out, "fill:rgb(17,17,17)")
	assert.Contains(t, out, "-5,-5 15,-5 5,15")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))

	assert.Less(t, strings.Index(out, "rgb(200,200,200)"), strings.Index(out, "rgb(17,17,17)"))
}

func TestSVGResumedSpecimen(t *testing.T) {
	target := randomTarget(10, 10, 2)
	m := NewMutator(seededRand(1))
	best := NewSpecimen(target)
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Mutate(best, target))
	}

	var buf bytes.Buffer
	s := NewSVG(&buf)
	require.NoError(t, s.Draw(Frame{Generation: 12, Best: best, Target: target}))
	require.NoError(t, s.Close())

	assert.Equal(t, 5, strings.Count(buf.String(), "<polygon"))
}

func TestSVGDrawAfterClose(t *testing.T) {
	var buf bytes.Buffer
	s := NewSVG(&buf)
	require.NoError(t, s.Close())
	assert.Empty(t, buf.String())

	target := randomTarget(4, 4, 1)
	assert.Error(t, s.Draw(Frame{Best: NewSpecimen(target), Target: target}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestSVGWriteError(t *testing.T) {
	target := randomTarget(4, 4, 1)
	s := NewSVG(failingWriter{})
	err := s.Draw(Frame{Best: NewSpecimen(target), Target: target})
	assert.ErrorIs(t, err, assert.AnError)
}
