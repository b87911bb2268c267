// This file is part of Gopher264.
//
// Gopher264 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher264 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher264.  If not, see <https://www.gnu.org/licenses/>.

package colourgen

import (
	"math"
)

func clampRange(v float64, mn float64, mx float64) float64 {
	// NaN values are treated as the minimum
	if v != v || v < mn {
		return mn
	}
	if v > mx {
		return mx
	}
	return v
}

// YUVToRGB converts a YUV triple to RGB. The results are not clamped.
func YUVToRGB(y, u, v float64) (float64, float64, float64) {
	// R = (V / 0.877) + Y
	// B = (U / 0.492) + Y
	// G = (Y - ((R * 0.299) + (B * 0.114))) / 0.587
	r := (v / 0.877) + y
	b := (u / 0.492) + y
	g := (y - ((r * 0.299) + (b * 0.114))) / 0.587
	return r, g, b
}

// RGBToYUV converts an RGB triple to YUV.
func RGBToYUV(r, g, b float64) (float64, float64, float64) {
	// Y = (0.299 * R) + (0.587 * G) + (0.114 * B)
	// U = 0.492 * (B - Y)
	// V = 0.877 * (R - Y)
	y := (0.299 * r) + (0.587 * g) + (0.114 * b)
	u := 0.492 * (b - y)
	v := 0.877 * (r - y)
	return y, u, v
}

// Rotate the chroma components by the angle, specified in degrees.
func Rotate(u, v float64, degrees float64) (float64, float64) {
	phi := degrees * math.Pi / 180.0
	re := math.Cos(phi)
	im := math.Sin(phi)
	return u*re - v*im, u*im + v*re
}

func (c Channel) adjust(x float64, p Parameters) float64 {
	x = (x-0.5)*p.Contrast*c.Contrast + 0.5 + p.Brightness + c.Brightness
	x = math.Max(x, 0.0)
	x = math.Pow(x, 1.0/(p.Gamma*c.Gamma))
	return math.Min(x, 1.0)
}

// Correct applies colour correction to the YUV triple and returns RGB values
// in the range 0 to 1.
//
// Chroma is rotated by the hue setting and scaled by saturation. After
// conversion to RGB, each channel has the combined global and per-channel
// contrast applied around the mid-point, followed by the brightness offset and
// the gamma curve.
//
// The Parameters value should have been clamped before calling this function.
func (p Parameters) Correct(y, u, v float64) (float64, float64, float64) {
	if p.Hue != 0.0 {
		u, v = Rotate(u, v, p.Hue)
	}
	u *= p.Saturation
	v *= p.Saturation

	r, g, b := YUVToRGB(y, u, v)

	r = p.Red.adjust(r, p)
	g = p.Green.adjust(g, p)
	b = p.Blue.adjust(b, p)

	return r, g, b
}
