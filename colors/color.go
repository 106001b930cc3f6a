package colors

import (
	"image/color"
	"math"

	"github.com/echoflaresat/pathcam/vectors"
)

// maxIntensity keeps 256*c below 256 so full white quantizes to 255.
const maxIntensity = 0.999

// Black returns the zero radiance.
func Black() vectors.Vec3 {
	return vectors.Vec3{}
}

// White returns unit radiance in every channel.
func White() vectors.Vec3 {
	return vectors.One()
}

func RGB(r, g, b float64) vectors.Vec3 {
	return vectors.Vec3{X: r, Y: g, Z: b}
}

// Encode turns an accumulated radiance sum over samples into three 8-bit
// channels: average, gamma 2 (square root), clamp to [0, 0.999], quantize.
func Encode(sum vectors.Vec3, samples int) (r, g, b uint8) {
	if samples < 1 {
		samples = 1
	}
	scale := 1.0 / float64(samples)
	return encodeChannel(sum.X * scale),
		encodeChannel(sum.Y * scale),
		encodeChannel(sum.Z * scale)
}

// ToNRGBA is Encode packed into an opaque color.NRGBA.
func ToNRGBA(sum vectors.Vec3, samples int) color.NRGBA {
	r, g, b := Encode(sum, samples)
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func encodeChannel(linear float64) uint8 {
	// NaN and negative radiance both encode as black
	if !(linear > 0) {
		return 0
	}
	corrected := clamp(math.Sqrt(linear), 0, maxIntensity)
	return uint8(256.0 * corrected)
}

// clamp bounds x into the inclusive range [min, max].
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Clamp01 clamps each channel into [0,1]. Used for material albedos.
func Clamp01(c vectors.Vec3) vectors.Vec3 {
	return vectors.Vec3{
		X: clamp01(c.X),
		Y: clamp01(c.Y),
		Z: clamp01(c.Z),
	}
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return clamp(x, 0, 1)
}
