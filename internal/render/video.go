package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// SaveAVI writes the captured frames as a motion-JPEG AVI. For long runs this
// stays far smaller than a GIF. All frames must share the same bounds.
func SaveAVI(filename string, frames []image.Image, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to save")
	}
	if fps <= 0 {
		fps = 10
	}

	bounds := frames[0].Bounds()
	aw, err := mjpeg.New(filename, int32(bounds.Dx()), int32(bounds.Dy()), int32(fps))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for i, img := range frames {
		if img.Bounds() != bounds {
			_ = aw.Close()
			return fmt.Errorf("frame %d bounds %v differ from %v", i, img.Bounds(), bounds)
		}
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			_ = aw.Close()
			return err
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			_ = aw.Close()
			return err
		}
	}
	return aw.Close()
}
