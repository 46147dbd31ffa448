package genimage

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVG streams the accepted triangles as vector graphic: a black background
// of the target size and one half transparent polygon per triangle, in draw
// order.
type SVG struct {
	Title       string
	Description string

	w       *errWriter
	canvas  *svg.SVG
	started bool
	closed  bool
	last    Triangle
	hasLast bool
}

// NewSVG returns an SVG drawer writing to w.
func NewSVG(w io.Writer) *SVG {
	ew := &errWriter{w: w}
	return &SVG{
		w:      ew,
		canvas: svg.New(ew),
	}
}

// Draw writes the header and every triangle of the best specimen on the
// first call. Later calls only append the newest triangle, and only when it
// differs from the last one written, since an unchanged best specimen
// would otherwise be exported twice.
func (s *SVG) Draw(f Frame) error {
	if s.closed {
		return fmt.Errorf("svg: draw after close")
	}
	if f.Best == nil {
		return nil
	}
	if !s.started {
		width, height := f.Target.Bounds().Dx(), f.Target.Bounds().Dy()
		s.canvas.Start(width, height)
		if s.Title != "" {
			s.canvas.Title(s.Title)
		}
		if s.Description != "" {
			s.canvas.Desc(s.Description)
		}
		s.canvas.Rect(0, 0, width, height, "fill:#000")
		for _, t := range f.Best.Triangles {
			s.polygon(t)
		}
		s.started = true
		return s.w.err
	}

	t, ok := f.Best.LastTriangle()
	if ok && (!s.hasLast || t != s.last) {
		s.polygon(t)
	}
	return s.w.err
}

// Close terminates the document. It doesn't close the underlying writer.
func (s *SVG) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.started {
		s.canvas.End()
	}
	return s.w.err
}

func (s *SVG) polygon(t Triangle) {
	xs := []int{t.V[0].X, t.V[1].X, t.V[2].X}
	ys := []int{t.V[0].Y, t.V[1].Y, t.V[2].Y}
	s.canvas.Polygon(xs, ys, fmt.Sprintf("fill:rgb(%d,%d,%d);opacity:0.5", t.Color.R, t.Color.G, t.Color.B))
	s.last = t
	s.hasLast = true
}

// errWriter keeps the first write error, svgo doesn't report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
