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

// IndexToYUV implementations map an 8bit colour index to a YUV triple. The ntsc
// argument indicates whether the index should be interpreted for an NTSC
// signal. Implementations must not depend on the order in which indexes are
// requested.
type IndexToYUV interface {
	IndexToYUV(index uint8, ntsc bool) (y float64, u float64, v float64)
}

// IndexToYUVFunc allows an ordinary function to be used as an IndexToYUV
// implementation.
type IndexToYUVFunc func(index uint8, ntsc bool) (y float64, u float64, v float64)

// IndexToYUV implements the IndexToYUV interface.
func (f IndexToYUVFunc) IndexToYUV(index uint8, ntsc bool) (float64, float64, float64) {
	return f(index, ntsc)
}

// Greyscale maps the colour index directly to luminance with no chroma.
var Greyscale IndexToYUV = IndexToYUVFunc(func(index uint8, _ bool) (float64, float64, float64) {
	return float64(index) / 255.0, 0.0, 0.0
})

// Channel adjustments are applied to one of the red, green or blue channels
// after the global adjustments.
type Channel struct {
	Brightness float64
	Contrast   float64
	Gamma      float64
}

// Parameters for colour correction. The zero value is not useful and should
// be created with DefaultParameters().
//
// Values outside of the permitted range are saturated by the Clamped()
// function and never rejected. Consumers of a Parameters value always take a
// clamped copy.
type Parameters struct {
	// display quality and buffering mode are carried for the benefit of
	// display collaborators. they have no effect on capture
	Quality   int
	Buffering int

	NTSC bool

	// mapping of colour index to base YUV. a nil value is treated as
	// Greyscale
	IndexToYUV IndexToYUV

	Brightness float64
	Contrast   float64
	Gamma      float64
	Saturation float64

	// hue rotation in degrees
	Hue float64

	Red   Channel
	Green Channel
	Blue  Channel

	// line blending and motion blur parameters. carried for display
	// collaborators
	BlendScale1 float64
	BlendScale2 float64
	BlendScale3 float64

	PixelAspectRatio float64
}

// DefaultParameters returns the neutral colour correction parameters.
func DefaultParameters() Parameters {
	neutral := Channel{Brightness: 0.0, Contrast: 1.0, Gamma: 1.0}
	return Parameters{
		Quality:          2,
		Buffering:        0,
		IndexToYUV:       Greyscale,
		Brightness:       0.0,
		Contrast:         1.0,
		Gamma:            1.0,
		Saturation:       1.0,
		Hue:              0.0,
		Red:              neutral,
		Green:            neutral,
		Blue:             neutral,
		BlendScale1:      0.5,
		BlendScale2:      0.7,
		BlendScale3:      0.3,
		PixelAspectRatio: 1.0,
	}
}

// the ranges for each parameter
const (
	minQuality    = 0
	maxQuality    = 3
	minBuffering  = 0
	maxBuffering  = 2
	minBrightness = -0.5
	maxBrightness = 0.5
	minContrast   = 0.5
	maxContrast   = 2.0
	minGamma      = 0.25
	maxGamma      = 4.0
	minSaturation = 0.0
	maxSaturation = 2.0
	minHue        = -180.0
	maxHue        = 180.0
	maxBlend1     = 0.5
	maxBlend      = 1.0
	minAspect     = 0.5
	maxAspect     = 2.0
)

func (c Channel) clamped() Channel {
	return Channel{
		Brightness: clampRange(c.Brightness, minBrightness, maxBrightness),
		Contrast:   clampRange(c.Contrast, minContrast, maxContrast),
		Gamma:      clampRange(c.Gamma, minGamma, maxGamma),
	}
}

// Clamped returns a copy of the parameters with every field saturated to its
// permitted range. A nil IndexToYUV is replaced with Greyscale.
func (p Parameters) Clamped() Parameters {
	c := p

	c.Quality = min(max(p.Quality, minQuality), maxQuality)
	c.Buffering = min(max(p.Buffering, minBuffering), maxBuffering)

	if c.IndexToYUV == nil {
		c.IndexToYUV = Greyscale
	}

	c.Brightness = clampRange(p.Brightness, minBrightness, maxBrightness)
	c.Contrast = clampRange(p.Contrast, minContrast, maxContrast)
	c.Gamma = clampRange(p.Gamma, minGamma, maxGamma)
	c.Saturation = clampRange(p.Saturation, minSaturation, maxSaturation)
	c.Hue = clampRange(p.Hue, minHue, maxHue)

	c.Red = p.Red.clamped()
	c.Green = p.Green.clamped()
	c.Blue = p.Blue.clamped()

	c.BlendScale1 = clampRange(p.BlendScale1, 0.0, maxBlend1)
	c.BlendScale2 = clampRange(p.BlendScale2, 0.0, maxBlend)
	c.BlendScale3 = clampRange(p.BlendScale3, 0.0, maxBlend)

	c.PixelAspectRatio = clampRange(p.PixelAspectRatio, minAspect, maxAspect)

	return c
}
