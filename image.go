package genimage

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/genimage/genimage/utils"
)

// Image saves PNG snapshots of the search: the target on the left, the best
// specimen on the right and the run statistics written over the target.
type Image struct {
	Path string
	// Every saves a snapshot every that many generations. Zero or one saves
	// every generation.
	Every int
	// NoStats leaves out the statistics text.
	NoStats bool
}

// Draw saves a snapshot when the generation is due.
func (im *Image) Draw(f Frame) error {
	if f.Best == nil {
		return nil
	}
	if im.Every > 1 && f.Generation%im.Every != 0 {
		return nil
	}
	dc := im.render(f)
	if err := dc.SavePNG(im.Path); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", im.Path, err)
	}
	Logger().Debug("snapshot saved", "path", im.Path, "generation", f.Generation)
	return nil
}

// Render returns the snapshot image for the frame.
func (im *Image) Render(f Frame) image.Image {
	return im.render(f).Image()
}

func (im *Image) render(f Frame) *gg.Context {
	width, height := f.Target.Bounds().Dx(), f.Target.Bounds().Dy()

	dc := gg.NewContext(width*2, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(f.Target, 0, 0)
	dc.DrawImage(f.Best.Buffer, width, 0)

	if !im.NoStats {
		lines := []string{
			fmt.Sprintf("Generation: %d", f.Generation),
			fmt.Sprintf("Specimens: %d", f.Specimens),
			fmt.Sprintf("Triangles: %d", len(f.Best.Triangles)),
			fmt.Sprintf("Elapsed time: %s", utils.FormatTime(f.Elapsed)),
			fmt.Sprintf("Difference: %d", f.Best.Score),
		}
		drawStats(dc, lines)
	}
	return dc
}

// drawStats writes white text with a one pixel black outline.
func drawStats(dc *gg.Context, lines []string) {
	face := basicfont.Face7x13
	dc.SetFontFace(face)
	lineHeight := float64(face.Height)

	for i, line := range lines {
		x, y := 4.0, lineHeight*float64(i+1)

		dc.SetRGB(0, 0, 0)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					dc.DrawString(line, x+float64(dx), y+float64(dy))
				}
			}
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawString(line, x, y)
	}
}
