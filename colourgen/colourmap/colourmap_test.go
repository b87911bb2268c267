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

package colourmap_test

import (
	"testing"

	"github.com/jetsetilly/gopher264/colourgen"
	"github.com/jetsetilly/gopher264/colourgen/colourmap"
	"github.com/jetsetilly/gopher264/signal"
	"github.com/jetsetilly/gopher264/test"
)

func TestBlankBand(t *testing.T) {
	for _, format := range []colourmap.Format{colourmap.YUV, colourmap.RGB32, colourmap.RGB16} {
		params := colourgen.DefaultParameters()
		params.IndexToYUV = colourgen.TED
		params.Brightness = 0.3

		c := colourmap.NewColormap()
		c.Build(params, format)

		var expected uint32
		if format == colourmap.YUV {
			expected = 0x808000
		}

		for i := 0; i < colourmap.BandSize; i++ {
			if !test.ExpectEquality(t, c.Pixel(colourmap.BlankBand, uint8(i)), expected, format, i) {
				break
			}
		}
	}
}

func TestSelection(t *testing.T) {
	c := colourmap.NewColormap()

	// every band is reachable from at least one selector
	seen := make(map[int]bool)
	for s := 0; s < 256; s++ {
		b := c.Band(uint8(s))
		test.ExpectRange(t, b, 0, colourmap.NumBands-1, s)
		seen[b] = true
	}
	test.ExpectEquality(t, len(seen), colourmap.NumBands)

	// sync and horizontal blanking always select the blank band
	for lf := 0; lf < 256; lf++ {
		lf := signal.LineFlags(lf) &^ signal.LineFlags(signal.SelectorMask)
		test.ExpectEquality(t, c.Band(signal.Selector(signal.HSync, lf)), colourmap.BlankBand)
		test.ExpectEquality(t, c.Band(signal.Selector(signal.HBlank|signal.Burst, lf)), colourmap.BlankBand)
	}

	// colour burst
	test.ExpectEquality(t, c.Band(signal.Selector(signal.Burst, signal.ColourLock)), 8)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.Burst, signal.ColourLock|signal.Parity)), 9)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.Burst, 0)), 10)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.Burst|signal.OddLine, 0)), 11)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.Burst, signal.NTSC|signal.ColourLock)), 12)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.Burst, signal.NTSC)), 13)

	// active video
	test.ExpectEquality(t, c.Band(signal.Selector(0, 0)), 6)
	test.ExpectEquality(t, c.Band(signal.Selector(0, signal.ColourLock)), 0)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.OddLine, signal.ColourLock|signal.Parity)), 0)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.OddLine, signal.ColourLock)), 3)
	test.ExpectEquality(t, c.Band(signal.Selector(0, signal.ColourLock|signal.Unstable)), 1)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.OddLine, signal.ColourLock|signal.Unstable|signal.Parity)), 2)
	test.ExpectEquality(t, c.Band(signal.Selector(0, signal.NTSC)), 17)
	test.ExpectEquality(t, c.Band(signal.Selector(signal.OddLine, signal.NTSC|signal.ColourLock)), 14)
	test.ExpectEquality(t, c.Band(signal.Selector(0, signal.NTSC|signal.ColourLock|signal.Unstable)), 15)
	test.ExpectEquality(t, c.Band(signal.Selector(0, signal.NTSC|signal.ColourLock|signal.Unstable|signal.Parity)), 16)
}

func TestIndexToYUVCalls(t *testing.T) {
	var pal, ntsc int
	params := colourgen.DefaultParameters()
	params.IndexToYUV = colourgen.IndexToYUVFunc(func(index uint8, isNTSC bool) (float64, float64, float64) {
		if isNTSC {
			ntsc++
		} else {
			pal++
		}
		return colourgen.Greyscale.IndexToYUV(index, isNTSC)
	})

	c := colourmap.NewColormap()
	c.Build(params, colourmap.YUV)

	// base colours are generated once for PAL bands and once for NTSC bands
	test.ExpectEquality(t, pal, colourmap.BandSize)
	test.ExpectEquality(t, ntsc, colourmap.BandSize)
}

func TestGreyscaleYUV(t *testing.T) {
	c := colourmap.NewColormap()
	c.Build(colourgen.DefaultParameters(), colourmap.YUV)
	test.ExpectEquality(t, c.Format(), colourmap.YUV)

	for _, bnd := range []int{0, 3, 6, 14, 17} {
		for i := 0; i < colourmap.BandSize; i++ {
			p := c.Pixel(bnd, uint8(i))
			test.ExpectApproximate(t, int(p&0xff), i, 1, bnd, i)
			test.ExpectApproximate(t, int((p>>8)&0xff), 0x80, 1, bnd, i)
			test.ExpectApproximate(t, int((p>>16)&0xff), 0x80, 1, bnd, i)
		}
	}
}

func TestRGBFormats(t *testing.T) {
	c := colourmap.NewColormap()

	c.Build(colourgen.DefaultParameters(), colourmap.RGB32)
	test.ExpectEquality(t, c.Pixel(0, 0), uint32(0x000000))
	test.ExpectEquality(t, c.Pixel(0, 255), uint32(0xffffff))

	c.Build(colourgen.DefaultParameters(), colourmap.RGB16)
	test.ExpectEquality(t, c.Pixel(0, 0), uint32(0x0000))
	test.ExpectEquality(t, c.Pixel(0, 255), uint32(0xffff))

	// greens stay within the nudge distance of the plain quantisation
	for i := 0; i < colourmap.BandSize; i++ {
		p := c.Pixel(0, uint8(i))
		g := int((p >> 5) & 0x3f)
		test.ExpectApproximate(t, g, int(float64(i)/255.0*63.0+0.5), 4, i)
	}
}

func TestBurstChromaLimit(t *testing.T) {
	params := colourgen.DefaultParameters()
	params.IndexToYUV = colourgen.TED

	c := colourmap.NewColormap()
	c.Build(params, colourmap.YUV)

	// chroma in burst bands never exceeds the limit. converted back from the
	// unsigned representation
	for _, bnd := range []int{8, 9, 10, 11, 12, 13} {
		for i := 0; i < colourmap.BandSize; i++ {
			p := c.Pixel(bnd, uint8(i))
			u := float64((p>>8)&0xff)/255.0/1.147020 - 0.435912
			v := float64((p>>16)&0xff)/255.0/0.813303 - 0.614777
			test.ExpectRange(t, u*u+v*v, 0.0, 0.25*0.25, bnd, i)
		}
	}
}

func TestConvertFourPixels(t *testing.T) {
	c := colourmap.NewColormap()
	c.Build(colourgen.DefaultParameters(), colourmap.YUV)

	out := make([]uint32, 4)

	// two byte sample repeats the colour
	n := c.ConvertFourPixels(out, []byte{0x00, 0x40}, signal.ColourLock)
	test.ExpectEquality(t, n, 2)
	for _, p := range out {
		test.ExpectEquality(t, p, c.Pixel(0, 0x40))
	}

	// five byte sample
	n = c.ConvertFourPixels(out, []byte{byte(signal.FourPixels), 1, 2, 3, 4}, signal.ColourLock)
	test.ExpectEquality(t, n, 5)
	for i, p := range out {
		test.ExpectEquality(t, p, c.Pixel(0, uint8(i+1)))
	}

	// sync
	n = c.ConvertFourPixels(out, []byte{byte(signal.HSync), 0x71}, signal.ColourLock)
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, out[0], c.Pixel(colourmap.BlankBand, 0))

	// short input
	out[0] = 0xdeadbeef
	n = c.ConvertFourPixels(out, []byte{byte(signal.FourPixels), 1, 2}, 0)
	test.ExpectEquality(t, n, 0)
	test.ExpectEquality(t, out[0], uint32(0xdeadbeef))
	test.ExpectEquality(t, c.ConvertFourPixels(out, nil, 0), 0)
}

func TestIteration(t *testing.T) {
	c := colourmap.NewColormap()
	c.Build(colourgen.DefaultParameters(), colourmap.YUV)

	var n int
	for p := c.First(); p != nil; p = c.Next() {
		n++
	}
	test.ExpectEquality(t, n, colourmap.NumBands*colourmap.BandSize)

	c.Each(func(p uint32) uint32 {
		return ((p & 0xff0000) << 4) | ((p & 0xff00) << 2) | (p & 0xff)
	})
	test.ExpectEquality(t, c.Pixel(colourmap.BlankBand, 0), uint32(0x08020000))
}
