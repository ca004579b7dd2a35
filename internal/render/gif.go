package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// SaveGIF writes the captured frames as an animated GIF. delay is the
// per-frame delay in hundredths of a second.
func SaveGIF(filename string, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	outGIF := &gif.GIF{}
	for _, img := range frames {
		bounds := img.Bounds()
		// GIF needs paletted images; Plan9 covers the handful of state colors.
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)

		outGIF.Image = append(outGIF.Image, paletted)
		outGIF.Delay = append(outGIF.Delay, delay)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, outGIF); err != nil {
		return err
	}
	return f.Close()
}
