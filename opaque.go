package paint

import (
	"image"

	"github.com/gogpu/paint/pixel"
)

// MakeOpaque sets alpha to 1 for every pixel of bounds in buf, leaving the
// color channels as stored.
func MakeOpaque(cfg *Configuration, buf *pixel.Buffer, bounds image.Rectangle) error {
	return ProcessPixelRowsAsVector4(cfg, buf, bounds, pixel.Scale, func(_ int, row []pixel.Vec4) {
		for i := range row {
			row[i].A = 1
		}
	})
}
