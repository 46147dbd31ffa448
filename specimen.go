package genimage

import (
	"image"
	"image/color"
)

// Triangle is a gray, half transparent triangle.
// The vertices are stored counter-clockwise.
type Triangle struct {
	V     [3]image.Point
	Color color.RGBA
}

// NewTriangle returns a triangle with the given vertices and gray intensity.
func NewTriangle(v0, v1, v2 image.Point, gray uint8) Triangle {
	return Triangle{
		V:     [3]image.Point{v0, v1, v2},
		Color: color.RGBA{R: gray, G: gray, B: gray, A: 255},
	}
}

// Specimen is a candidate approximation of the target image: the triangles
// drawn so far, the composited buffer and the accumulated squared error.
type Specimen struct {
	Triangles []Triangle
	Buffer    *image.NRGBA
	Score     int64
}

// NewSpecimen returns the root specimen for the target: an all black buffer,
// no triangles and the squared distance between black and the target.
func NewSpecimen(target *image.NRGBA) *Specimen {
	bounds := target.Bounds()
	buf := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for i := 3; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = 0xff
	}
	return &Specimen{
		Buffer: buf,
		Score:  ComputeScore(buf, target),
	}
}

// Clone returns a deep copy of the specimen.
func (s *Specimen) Clone() *Specimen {
	triangles := make([]Triangle, len(s.Triangles), len(s.Triangles)+1)
	copy(triangles, s.Triangles)

	buf := &image.NRGBA{
		Pix:    make([]uint8, len(s.Buffer.Pix)),
		Stride: s.Buffer.Stride,
		Rect:   s.Buffer.Rect,
	}
	copy(buf.Pix, s.Buffer.Pix)

	return &Specimen{
		Triangles: triangles,
		Buffer:    buf,
		Score:     s.Score,
	}
}

// Add appends the triangle and draws it over the buffer.
func (s *Specimen) Add(t Triangle, target *image.NRGBA) {
	s.Triangles = append(s.Triangles, t)
	Rasterize(s, t, target)
}

// LastTriangle returns the most recently added triangle.
// The boolean is false for a specimen without triangles.
func (s *Specimen) LastTriangle() (Triangle, bool) {
	if len(s.Triangles) == 0 {
		return Triangle{}, false
	}
	return s.Triangles[len(s.Triangles)-1], true
}

// Replay builds a specimen by drawing the triangles in order over the root
// specimen of the target.
func Replay(target *image.NRGBA, triangles []Triangle) *Specimen {
	s := NewSpecimen(target)
	s.Triangles = make([]Triangle, 0, len(triangles))
	for _, t := range triangles {
		s.Add(t, target)
	}
	return s
}

// ComputeScore sums the squared per channel difference between buf and target
// over every pixel. The alpha channel is ignored.
func ComputeScore(buf, target *image.NRGBA) int64 {
	var (
		score int64

		width  = Min(buf.Bounds().Dx(), target.Bounds().Dx())
		height = Min(buf.Bounds().Dy(), target.Bounds().Dy())
	)

	for y := 0; y < height; y++ {
		bi := buf.PixOffset(buf.Rect.Min.X, buf.Rect.Min.Y+y)
		ti := target.PixOffset(target.Rect.Min.X, target.Rect.Min.Y+y)
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				d := int64(target.Pix[ti+c]) - int64(buf.Pix[bi+c])
				score += d * d
			}
			bi += 4
			ti += 4
		}
	}
	return score
}
