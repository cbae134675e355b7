package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
)

// maxTextureSize bounds uploaded terrain textures; larger images are
// downsampled before upload.
const maxTextureSize = 1024

// LoadTexture loads a repeating, mipmapped 2D texture from a file
func LoadTexture(path string) (uint32, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return uploadRepeating(fitTexture(img)), nil
}

// LoadTextureOrChecker falls back to a generated checker when the file is
// missing, so the viewer runs without assets.
func LoadTextureOrChecker(path string) uint32 {
	tex, err := LoadTexture(path)
	if err != nil {
		log.Printf("texture %s unavailable (%v), using checker", path, err)
		return uploadRepeating(checker(64, 8))
	}
	return tex
}

// fitTexture converts img to RGBA, scaling it down to maxTextureSize.
func fitTexture(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxTextureSize || h > maxTextureSize {
		scale := float64(maxTextureSize) / float64(max(w, h))
		w = max(int(float64(w)*scale), 1)
		h = max(int(float64(h)*scale), 1)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.BiLinear.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}
	return rgba
}

// checker builds a two-tone grass checkerboard.
func checker(size, cells int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 96, G: 148, B: 64, A: 255}
	dark := color.RGBA{R: 72, G: 118, B: 48, A: 255}
	cell := max(size/cells, 1)
	for y := range size {
		for x := range size {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func uploadRepeating(rgba *image.RGBA) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(rgba.Rect.Size().X),
		int32(rgba.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}
