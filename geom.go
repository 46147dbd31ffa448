package genimage

import "image"

// Orient2d returns the cross product (b-a) x (c-a).
// For a counter-clockwise triangle every interior point gives a non-negative
// value for all three edges.
func Orient2d(a, b, c image.Point) int {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// SignedArea returns twice the signed area of the triangle abc.
// It carries the same sign as Orient2d(a, b, c).
func SignedArea(a, b, c image.Point) int {
	return a.X*b.Y + b.X*c.Y + c.X*a.Y - b.Y*c.X - c.Y*a.X - a.Y*b.X
}

// isDegenerate reports whether the three points can't form a proper triangle.
func isDegenerate(a, b, c image.Point) bool {
	if a == b || b == c || a == c {
		return true
	}
	return SignedArea(a, b, c) == 0
}
