package terrain

import (
	"image"
	"image/color"
)

// Heightmap rasterizes the height field over a size x size pixel square
// whose top-left pixel samples world (originX, originZ). Each pixel covers
// step world units. Heights in [-amplitude, amplitude] map to [0, 255].
func (t *Terrain) Heightmap(originX, originZ, size, step int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, max(size, 0), max(size, 0)))
	if size <= 0 {
		return img
	}
	step = max(step, 1)
	amp := t.cfg.HeightAmplitude
	for py := range size {
		for px := range size {
			h := t.HeightAt(float64(originX+px*step), float64(originZ+py*step))
			img.SetGray(px, py, color.Gray{Y: shade(h, amp)})
		}
	}
	return img
}

func shade(h, amp float32) uint8 {
	v := (h/amp + 1) / 2 * 255
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
