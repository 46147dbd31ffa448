package genimage

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpecimenScore(t *testing.T) {
	target := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	target.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})

	s := NewSpecimen(target)
	assert.Equal(t, int64(1400), s.Score)
	assert.Empty(t, s.Triangles)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, s.Buffer.NRGBAAt(0, 0))
}

func TestNewSpecimenIgnoresTargetOrigin(t *testing.T) {
	target := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	for i := 0; i < len(target.Pix); i++ {
		target.Pix[i] = 2
	}
	s := NewSpecimen(target)
	assert.Equal(t, image.Rect(0, 0, 3, 2), s.Buffer.Bounds())
	assert.Equal(t, int64(3*2*3*4), s.Score)
}

func TestCloneIsIndependent(t *testing.T) {
	target := randomTarget(20, 20, 1)
	m := NewMutator(seededRand(1))
	parent := NewSpecimen(target)
	require.NoError(t, m.Mutate(parent, target))

	pix := append([]uint8(nil), parent.Buffer.Pix...)
	score := parent.Score

	child := parent.Clone()
	for i := 0; i < 10; i++ {
		require.NoError(t, m.Mutate(child, target))
	}

	assert.Len(t, parent.Triangles, 1)
	assert.Len(t, child.Triangles, 11)
	assert.Equal(t, score, parent.Score)
	assert.Equal(t, pix, parent.Buffer.Pix)
	assert.Equal(t, parent.Triangles[0], child.Triangles[0])
}

func TestLastTriangle(t *testing.T) {
	target := randomTarget(8, 8, 2)
	s := NewSpecimen(target)

	_, ok := s.LastTriangle()
	assert.False(t, ok)

	first := NewTriangle(image.Pt(0, 0), image.Pt(7, 0), image.Pt(0, 7), 40)
	second := NewTriangle(image.Pt(7, 7), image.Pt(7, 0), image.Pt(0, 7), 90)
	s.Add(first, target)
	s.Add(second, target)

	last, ok := s.LastTriangle()
	require.True(t, ok)
	assert.Equal(t, second, last)
}

func TestReplay(t *testing.T) {
	target := randomTarget(25, 15, 3)
	m := NewMutator(seededRand(3))
	s := NewSpecimen(target)
	for i := 0; i < 30; i++ {
		require.NoError(t, m.Mutate(s, target))
	}

	r := Replay(target, s.Triangles)
	assert.Equal(t, s.Score, r.Score)
	assert.Equal(t, s.Buffer.Pix, r.Buffer.Pix)
	assert.Equal(t, s.Triangles, r.Triangles)
}
