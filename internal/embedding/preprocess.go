package embedding

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// pixelScale maps 8-bit channel values into [0, 1].
const pixelScale = float32(1.0 / 255.0)

// Preprocess scales an image to size x size and lays it out as planar RGB
// float32 in CHW order, the layout convolutional image models expect. Each
// channel value is scaled to [0, 1].
func Preprocess(img image.Image, size int) []float32 {
	resized := transform.Resize(img, size, size, transform.Linear)
	out := make([]float32, 3*size*size)
	plane := size * size
	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			out[i] = float32(r>>8) * pixelScale
			out[i+plane] = float32(g>>8) * pixelScale
			out[i+2*plane] = float32(b>>8) * pixelScale
			i++
		}
	}
	return out
}
