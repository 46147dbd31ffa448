package genimage

import (
	"errors"
	"image"
)

const (
	// DefaultMargin is how far outside of the image a vertex may be placed.
	DefaultMargin = 30
	// DefaultMaxRetries bounds the rejection sampling of a single triangle.
	DefaultMaxRetries = 1 << 20
)

// ErrSamplingExhausted is returned when no valid triangle could be sampled.
var ErrSamplingExhausted = errors.New("triangle sampling exhausted")

// Source is the random number generator used for mutations.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform random number in [0, n).
	Intn(n int) int
}

// Mutator samples random triangles for an image of a given size.
type Mutator struct {
	Source     Source
	Margin     int
	MaxRetries int
}

// NewMutator returns a Mutator with the default margin and retry limit.
func NewMutator(src Source) *Mutator {
	return &Mutator{
		Source:     src,
		Margin:     DefaultMargin,
		MaxRetries: DefaultMaxRetries,
	}
}

// Triangle samples a counter-clockwise, non-degenerate triangle with vertices
// in [-Margin, width+Margin) x [-Margin, height+Margin) and a random gray color.
// Invalid samples are thrown away and drawn again, so the accepted triangles
// are uniform over the valid ones.
func (m *Mutator) Triangle(width, height int) (Triangle, error) {
	spanX := width + 2*m.Margin
	spanY := height + 2*m.Margin
	if spanX <= 0 || spanY <= 0 {
		return Triangle{}, ErrSamplingExhausted
	}

	retries := m.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}

	var p [3]image.Point
	for i := 0; ; i++ {
		if i == retries {
			return Triangle{}, ErrSamplingExhausted
		}
		for j := range p {
			p[j].X = m.Source.Intn(spanX) - m.Margin
			p[j].Y = m.Source.Intn(spanY) - m.Margin
		}
		if !isDegenerate(p[0], p[1], p[2]) {
			break
		}
	}

	if SignedArea(p[0], p[1], p[2]) < 0 {
		p[1], p[2] = p[2], p[1]
	}

	return NewTriangle(p[0], p[1], p[2], uint8(m.Source.Intn(256))), nil
}

// Mutate samples a triangle for the target and adds it to the specimen.
func (m *Mutator) Mutate(s *Specimen, target *image.NRGBA) error {
	t, err := m.Triangle(target.Bounds().Dx(), target.Bounds().Dy())
	if err != nil {
		return err
	}
	s.Add(t, target)
	return nil
}
