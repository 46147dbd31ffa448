package genimage

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFrame(t *testing.T) Frame {
	t.Helper()
	target := randomTarget(200, 100, 1)
	pop := evolved(t, target, 3)
	return Frame{
		Generation: pop.Generation,
		Specimens:  10,
		Elapsed:    90 * time.Second,
		Best:       pop.Best(),
		Target:     target,
	}
}

func assertPixelNear(t *testing.T, want, got []uint8) {
	t.Helper()
	for c := 0; c < 3; c++ {
		assert.InDelta(t, want[c], got[c], 2, "channel %d", c)
	}
}

func TestImageRender(t *testing.T) {
	f := snapshotFrame(t)
	im := &Image{}

	img := ImgToNRGBA(im.Render(f))
	require.Equal(t, image.Rect(0, 0, 400, 100), img.Bounds())

	// Bottom corners are clear of the statistics text.
	i := img.PixOffset(399, 99)
	j := f.Best.Buffer.PixOffset(199, 99)
	assertPixelNear(t, f.Best.Buffer.Pix[j:j+3], img.Pix[i:i+3])

	i = img.PixOffset(0, 99)
	j = f.Target.PixOffset(0, 99)
	assertPixelNear(t, f.Target.Pix[j:j+3], img.Pix[i:i+3])
}

func TestImageStats(t *testing.T) {
	f := snapshotFrame(t)

	plain := ImgToNRGBA((&Image{NoStats: true}).Render(f))
	stats := ImgToNRGBA((&Image{}).Render(f))

	// The text is drawn over the top left of the target only.
	assert.NotEqual(t, region(plain, image.Rect(0, 0, 200, 70)), region(stats, image.Rect(0, 0, 200, 70)))
	assert.Equal(t, region(plain, image.Rect(200, 0, 400, 100)), region(stats, image.Rect(200, 0, 400, 100)))
	assert.Equal(t, region(plain, image.Rect(0, 70, 200, 100)), region(stats, image.Rect(0, 70, 200, 100)))
}

// region copies the pixels of r row by row.
func region(img *image.NRGBA, r image.Rectangle) []uint8 {
	var pix []uint8
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		pix = append(pix, img.Pix[i:i+r.Dx()*4]...)
	}
	return pix
}

func TestImageDraw(t *testing.T) {
	f := snapshotFrame(t)
	path := filepath.Join(t.TempDir(), "snapshot.png")
	im := &Image{Path: path, Every: 2}

	f.Generation = 3
	require.NoError(t, im.Draw(f))
	assert.NoFileExists(t, path)

	f.Generation = 4
	require.NoError(t, im.Draw(f))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestImageDrawError(t *testing.T) {
	f := snapshotFrame(t)
	im := &Image{Path: filepath.Join(t.TempDir(), "missing", "snapshot.png")}
	assert.Error(t, im.Draw(f))
}
