package genimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutatorTriangle(t *testing.T) {
	const width, height = 50, 40
	m := NewMutator(seededRand(1))

	for i := 0; i < 10000; i++ {
		tri, err := m.Triangle(width, height)
		require.NoError(t, err)

		v := tri.V
		require.Positive(t, Orient2d(v[0], v[1], v[2]), "winding of %v", v)
		require.NotEqual(t, v[0], v[1])
		require.NotEqual(t, v[1], v[2])
		require.NotEqual(t, v[0], v[2])
		for _, p := range v {
			require.GreaterOrEqual(t, p.X, -DefaultMargin)
			require.Less(t, p.X, width+DefaultMargin)
			require.GreaterOrEqual(t, p.Y, -DefaultMargin)
			require.Less(t, p.Y, height+DefaultMargin)
		}

		c := tri.Color
		require.Equal(t, c.R, c.G)
		require.Equal(t, c.G, c.B)
		require.Equal(t, uint8(255), c.A)
	}
}

func TestMutatorUsesWholeGrayRange(t *testing.T) {
	m := NewMutator(seededRand(2))
	var lo, hi uint8 = 255, 0
	for i := 0; i < 5000; i++ {
		tri, err := m.Triangle(20, 20)
		require.NoError(t, err)
		lo = Min(lo, tri.Color.R)
		hi = Max(hi, tri.Color.R)
	}
	assert.Equal(t, uint8(0), lo)
	assert.Equal(t, uint8(255), hi)
}

func TestMutatorSamplingExhausted(t *testing.T) {
	m := &Mutator{Source: constSource(0), Margin: DefaultMargin, MaxRetries: 10}
	_, err := m.Triangle(10, 10)
	assert.ErrorIs(t, err, ErrSamplingExhausted)
}

func TestMutatorEmptySpan(t *testing.T) {
	m := &Mutator{Source: seededRand(1), Margin: 0}
	_, err := m.Triangle(0, 0)
	assert.ErrorIs(t, err, ErrSamplingExhausted)
}

func TestMutatorTinyImage(t *testing.T) {
	// A zero sized image still leaves room for triangles in the margin.
	m := NewMutator(seededRand(3))
	tri, err := m.Triangle(0, 0)
	require.NoError(t, err)
	assert.Positive(t, Orient2d(tri.V[0], tri.V[1], tri.V[2]))
}

func TestMutate(t *testing.T) {
	target := randomTarget(16, 16, 9)
	s := NewSpecimen(target)
	m := NewMutator(seededRand(4))

	require.NoError(t, m.Mutate(s, target))
	require.Len(t, s.Triangles, 1)
	assert.Equal(t, ComputeScore(s.Buffer, target), s.Score)
}
