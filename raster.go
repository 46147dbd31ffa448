package genimage

import (
	"image"
)

// Rasterize draws the triangle over the specimen buffer with 50% opacity and
// updates the score by the change of the squared error of every touched pixel,
// so the whole image never has to be rescanned.
//
// Pixels in the first row and the first column are never drawn. The triangle
// must be wound counter-clockwise.
func Rasterize(s *Specimen, t Triangle, target *image.NRGBA) {
	var (
		v0, v1, v2 = t.V[0], t.V[1], t.V[2]

		width  = target.Bounds().Dx()
		height = target.Bounds().Dy()
		ox     = target.Rect.Min.X
		oy     = target.Rect.Min.Y
	)

	// Triangle bounding box clipped against the image.
	minX := Max(Min(v0.X, v1.X, v2.X), 0)
	minY := Max(Min(v0.Y, v1.Y, v2.Y), 0)
	maxX := Min(Max(v0.X, v1.X, v2.X), width-1)
	maxY := Min(Max(v0.Y, v1.Y, v2.Y), height-1)

	col := [3]int64{int64(t.Color.R), int64(t.Color.G), int64(t.Color.B)}

	var p image.Point
	for p.Y = minY; p.Y <= maxY; p.Y++ {
		for p.X = minX; p.X <= maxX; p.X++ {
			w0 := Orient2d(v1, v2, p)
			w1 := Orient2d(v2, v0, p)
			w2 := Orient2d(v0, v1, p)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			if p.X <= 0 || p.X >= width || p.Y <= 0 || p.Y >= height {
				continue
			}

			bi := s.Buffer.PixOffset(p.X, p.Y)
			ti := target.PixOffset(ox+p.X, oy+p.Y)
			for c := 0; c < 3; c++ {
				old := int64(s.Buffer.Pix[bi+c])
				cur := (old + col[c]) / 2
				tc := int64(target.Pix[ti+c])

				s.Score += (tc-cur)*(tc-cur) - (tc-old)*(tc-old)
				s.Buffer.Pix[bi+c] = uint8(cur)
			}
		}
	}
}
