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
	"github.com/jetsetilly/gopher264/signal"
)

// NumBands is the number of colour bands in a Colormap.
const NumBands = 18

// BandSize is the number of entries in a colour band. One for every colour
// index.
const BandSize = 256

// BlankBand is the band used for samples with the sync or horizontal blank
// flags set. The luminance scale of the band is zero and every entry is the
// same value.
const BlankBand = 7

type band struct {
	ntsc bool

	// chroma phase shift in degrees
	phase float64

	yScale float64
	uScale float64
	vScale float64

	// the colour burst is added to the chroma of every entry
	burst bool
}

// phase error applied to lines where the decoder is unsure of the colour
// phase
const phaseError = 33.0

var bands = [NumBands]band{
	// PAL. V-switch in phase
	{phase: 0, yScale: 1, uScale: 1, vScale: 1},
	{phase: phaseError, yScale: 1, uScale: 1, vScale: 1},
	{phase: 360 - phaseError, yScale: 1, uScale: 1, vScale: 1},

	// PAL. V-switch out of phase
	{phase: 0, yScale: 1, uScale: 1, vScale: -1},
	{phase: phaseError, yScale: 1, uScale: 1, vScale: -1},
	{phase: 360 - phaseError, yScale: 1, uScale: 1, vScale: -1},

	// PAL. no colour
	{phase: 0, yScale: 1, uScale: 0, vScale: 0},

	// blanking
	{phase: 0, yScale: 0, uScale: 0, vScale: 0},

	// PAL. colour burst
	{phase: 0, yScale: 1, uScale: 1, vScale: 1, burst: true},
	{phase: 0, yScale: 1, uScale: 1, vScale: -1, burst: true},
	{phase: phaseError, yScale: 1, uScale: 1, vScale: 1, burst: true},
	{phase: phaseError, yScale: 1, uScale: 1, vScale: -1, burst: true},

	// NTSC. colour burst
	{ntsc: true, phase: 0, yScale: 1, uScale: 1, vScale: 1, burst: true},
	{ntsc: true, phase: 360 - phaseError, yScale: 1, uScale: 1, vScale: 1, burst: true},

	// NTSC
	{ntsc: true, phase: 0, yScale: 1, uScale: 1, vScale: 1},
	{ntsc: true, phase: 360 - phaseError, yScale: 1, uScale: 1, vScale: 1},
	{ntsc: true, phase: phaseError, yScale: 1, uScale: 1, vScale: 1},

	// NTSC. no colour
	{ntsc: true, phase: 0, yScale: 1, uScale: 0, vScale: 0},
}

// band selection for samples with neither sync, blanking or burst. indexed by
//
//	bit 4: NTSC
//	bit 3: colour lock
//	bit 2: unstable line
//	bit 1: odd line flag of sample
//	bit 0: line parity
var bandIndex = [32]int{
	// PAL. no colour lock
	6, 6, 6, 6, 6, 6, 6, 6,
	// PAL. stable
	0, 3, 3, 0,
	// PAL. unstable
	1, 5, 4, 2,
	// NTSC. no colour lock
	17, 17, 17, 17, 17, 17, 17, 17,
	// NTSC. stable
	14, 14, 14, 14,
	// NTSC. unstable
	15, 16, 15, 16,
}

// selectBand returns the band for the selector value.
func selectBand(selector uint8) int {
	f := signal.Flags(selector)
	lf := signal.LineFlags(selector)

	if f&(signal.HSync|signal.HBlank) != 0 {
		return BlankBand
	}

	ntsc := lf&signal.NTSC == signal.NTSC
	lock := lf&signal.ColourLock == signal.ColourLock
	inPhase := (f&signal.OddLine == signal.OddLine) == (lf&signal.Parity == signal.Parity)

	if f&signal.Burst == signal.Burst {
		if ntsc {
			if lock {
				return 12
			}
			return 13
		}
		switch {
		case lock && inPhase:
			return 8
		case lock:
			return 9
		case inPhase:
			return 10
		}
		return 11
	}

	var idx int
	if ntsc {
		idx |= 0x10
	}
	if lock {
		idx |= 0x08
	}
	if lf&signal.Unstable == signal.Unstable {
		idx |= 0x04
	}
	if f&signal.OddLine == signal.OddLine {
		idx |= 0x02
	}
	if lf&signal.Parity == signal.Parity {
		idx |= 0x01
	}

	return bandIndex[idx]
}
