package genimage

import (
	"image"
	"math/rand"
)

// randomTarget returns an opaque image filled with random colors.
func randomTarget(width, height int, seed int64) *image.NRGBA {
	r := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(r.Intn(256))
		img.Pix[i+1] = uint8(r.Intn(256))
		img.Pix[i+2] = uint8(r.Intn(256))
		img.Pix[i+3] = 0xff
	}
	return img
}

func newTestEngine(target *image.NRGBA, specimens int, seed int64) *Engine {
	e := NewEngine(target, NewMutator(rand.New(rand.NewSource(seed))))
	e.Specimens = specimens
	return e
}

// constSource always returns the same value.
type constSource int

func (c constSource) Intn(n int) int { return int(c) % n }

func seededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
