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

package colourmap

import (
	"math"

	"github.com/jetsetilly/gopher264/colourgen"
	"github.com/jetsetilly/gopher264/signal"
)

// Format of the pixels stored in the Colormap.
type Format int

// List of valid Format values.
const (
	// 5-6-5 RGB with red in the most significant bits
	RGB16 Format = iota

	// 8bit per channel RGB with red in the least significant byte
	RGB32

	// 8bit per channel YUV with Y in the least significant byte and V in
	// the most significant. U and V are offset to be unsigned
	YUV
)

func (f Format) String() string {
	switch f {
	case RGB16:
		return "RGB16"
	case RGB32:
		return "RGB32"
	case YUV:
		return "YUV"
	}
	return "unknown format"
}

// PAL and NTSC burst vectors added to the chroma of burst bands. PAL burst
// is at 135 degrees and NTSC burst at 180 degrees
const (
	palBurst  = 0.12728
	ntscBurst = 0.18
)

// the maximum chroma magnitude after burst has been added
const chromaLimit = 0.21

// offset and scale that maps U and V into the range 0 to 1
const (
	uOffset = 0.435912
	uScale  = 1.147020
	vOffset = 0.614777
	vScale  = 0.813303
)

// Colormap is the table of output pixels for every band and colour index.
type Colormap struct {
	format Format

	// NumBands * BandSize entries
	data []uint32

	// the start of the band in data for every selector value
	table [256]int

	// iteration cursor for First() and Next()
	cursor int
}

// NewColormap is the preferred method of initialisation for the Colormap type.
// The returned colormap is filled with zero pixels until Build() is called.
func NewColormap() *Colormap {
	c := &Colormap{
		data: make([]uint32, NumBands*BandSize),
	}
	for s := range c.table {
		c.table[s] = selectBand(uint8(s)) * BandSize
	}
	return c
}

// Format returns the pixel format used by the last call to Build().
func (c *Colormap) Format() Format {
	return c.format
}

// Build the colormap using the colour correction parameters. The parameters
// are clamped before use.
func (c *Colormap) Build(params colourgen.Parameters, format Format) {
	params = params.Clamped()
	c.format = format

	var base [BandSize][3]float64
	var baseNTSC bool
	var baseValid bool

	for k, bnd := range bands {
		// the base colours are only generated when the television mode of
		// the band is different to the previous band
		if !baseValid || bnd.ntsc != baseNTSC {
			for i := range base {
				base[i][0], base[i][1], base[i][2] = params.IndexToYUV.IndexToYUV(uint8(i), bnd.ntsc)
			}
			baseNTSC = bnd.ntsc
			baseValid = true
		}

		for i := range base {
			c.data[k*BandSize+i] = c.entry(params, bnd, base[i][0], base[i][1], base[i][2])
		}
	}
}

func (c *Colormap) entry(params colourgen.Parameters, bnd band, y, u, v float64) uint32 {
	if bnd.burst {
		if bnd.ntsc {
			u -= ntscBurst
		} else {
			u -= palBurst
			v += palBurst
		}

		// limit chroma magnitude in the same way a decoder saturates
		if m := math.Hypot(u, v); m > chromaLimit {
			u *= chromaLimit / m
			v *= chromaLimit / m
		}
	}

	u, v = colourgen.Rotate(u, v, bnd.phase)
	u *= bnd.uScale
	v *= bnd.vScale

	r, g, b := params.Correct(y, u, v)
	y, u, v = colourgen.RGBToYUV(r, g, b)

	y *= bnd.yScale
	u *= bnd.yScale
	v *= bnd.yScale

	switch c.format {
	case YUV:
		u = (u + uOffset) * uScale
		v = (v + vOffset) * vScale
		return pack32(y, u, v)
	case RGB16:
		return pack16(colourgen.YUVToRGB(y, u, v))
	}
	return pack32(colourgen.YUVToRGB(y, u, v))
}

// quantise value in the range 0 to 1 to the number of levels, saturating out
// of range values
func quantise(v float64, levels float64) int {
	if v != v || v < 0.0 {
		return 0
	}
	if v >= 1.0 {
		return int(levels)
	}
	return int(v*levels + 0.5)
}

// pack32 packs the three components into the least significant three bytes,
// with the first component in the least significant byte.
func pack32(a, b, c float64) uint32 {
	return uint32(quantise(c, 255))<<16 | uint32(quantise(b, 255))<<8 | uint32(quantise(a, 255))
}

// the largest adjustment made to green when compensating for the luminance
// error of red and blue quantisation
const maxGreenNudge = 4

// pack16 packs RGB into a 5-6-5 value. Red and blue have fewer levels than
// green so the luminance error from their quantisation is compensated for by
// nudging green by a small number of levels.
func pack16(r, g, b float64) uint32 {
	ri := quantise(r, 31)
	bi := quantise(b, 31)
	gi := quantise(g, 63)

	lumErr := 0.299*(float64(ri)/31.0-r) + 0.114*(float64(bi)/31.0-b)
	if r >= 0.0 && r <= 1.0 && b >= 0.0 && b <= 1.0 {
		gn := quantise(g-lumErr/0.587, 63)
		gi = min(max(gn, gi-maxGreenNudge), gi+maxGreenNudge)
	}

	return uint32(ri)<<11 | uint32(gi)<<5 | uint32(bi)
}

// Band returns the band selected by the selector value.
func (c *Colormap) Band(selector uint8) int {
	return c.table[selector] / BandSize
}

// Pixel returns the pixel for the colour index in the band.
func (c *Colormap) Pixel(band int, index uint8) uint32 {
	return c.data[band*BandSize+int(index)]
}

// Lookup returns the pixel for the colour index in the band selected by the
// selector value.
func (c *Colormap) Lookup(selector uint8, index uint8) uint32 {
	return c.data[c.table[selector]+int(index)]
}

// Each calls the function for every entry in the colormap, replacing the
// entry with the returned value. Useful for converting pixels into a
// different packing after Build().
func (c *Colormap) Each(f func(pixel uint32) uint32) {
	for i, p := range c.data {
		c.data[i] = f(p)
	}
}

// First returns the first entry in the colormap and resets the iteration
// cursor used by Next().
func (c *Colormap) First() *uint32 {
	c.cursor = 0
	return &c.data[0]
}

// Next returns the next entry in the colormap or nil if there are no more
// entries.
func (c *Colormap) Next() *uint32 {
	c.cursor++
	if c.cursor >= len(c.data) {
		return nil
	}
	return &c.data[c.cursor]
}

// ConvertFourPixels decodes one sample into four pixels. The sample is taken
// from the start of the in slice and the number of bytes consumed by the
// sample is returned. The out slice must have room for four pixels.
//
// Returns zero if the in slice is shorter than the sample length indicated
// by the sample flags. In this case the out slice is not altered.
func (c *Colormap) ConvertFourPixels(out []uint32, in []byte, lf signal.LineFlags) int {
	if len(in) == 0 {
		return 0
	}

	f := signal.Flags(in[0])
	n := f.Len()
	if len(in) < n {
		return 0
	}

	bnd := c.data[c.table[signal.Selector(f, lf)]:]
	_ = out[3]

	if n == 2 {
		p := bnd[in[1]]
		out[0] = p
		out[1] = p
		out[2] = p
		out[3] = p
		return n
	}

	out[0] = bnd[in[1]]
	out[1] = bnd[in[2]]
	out[2] = bnd[in[3]]
	out[3] = bnd[in[4]]
	return n
}
