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

// Package signal describes the raw composite video sample produced by the
// video chip on every clock cycle.
//
// A sample is either two or five bytes long. The first byte is a set of Flags
// and the remaining bytes are colour indexes. A two byte sample has a single
// colour index that covers the full width of the cycle. A five byte sample has
// four colour indexes, one for each pixel of the cycle.
//
// The LineFlags type describes a completed line as it is handed to the
// colour lookup. The decoder combines the Flags of a sample with the
// LineFlags of the line it belongs to when selecting the colour band for the
// sample.
package signal

import (
	"strings"
)

// Flags is the first byte of every sample.
type Flags uint8

// List of sample flags.
const (
	// width of the cycle is four half-cycles rather than five. set for
	// samples produced while the chip is clocked for NTSC
	NTSCClock Flags = 0x01

	// the sample is five bytes long (four colour indexes)
	FourPixels Flags = 0x02

	// the line is an odd line in the PAL V-switch sequence
	OddLine Flags = 0x04

	// colour burst is being output
	Burst Flags = 0x08

	VBlank Flags = 0x10
	HBlank Flags = 0x20
	VSync  Flags = 0x40
	HSync  Flags = 0x80
)

// SelectorMask is the part of the Flags that is used to select the colour
// band. The remaining bits of the selector are filled with LineFlags.
const SelectorMask = uint8(HSync | HBlank | Burst | OddLine)

// Len returns the length of the sample in bytes.
func (f Flags) Len() int {
	return (1 << (f & FourPixels)) + 1
}

// Width returns the width of the cycle in half-cycles of the nominal 8.86MHz
// pixel clock.
func (f Flags) Width() int {
	return int((f & NTSCClock) ^ 5)
}

func (f Flags) String() string {
	s := strings.Builder{}
	if f&HSync == HSync {
		s.WriteString("HSYNC ")
	}
	if f&VSync == VSync {
		s.WriteString("VSYNC ")
	}
	if f&HBlank == HBlank {
		s.WriteString("HBLANK ")
	}
	if f&VBlank == VBlank {
		s.WriteString("VBLANK ")
	}
	if f&Burst == Burst {
		s.WriteString("BURST ")
	}
	if f&OddLine == OddLine {
		s.WriteString("ODD ")
	}
	return strings.TrimSpace(s.String())
}

// LineFlags describe the state of the decoder for a completed line.
type LineFlags uint8

// List of line flags. The values do not overlap with SelectorMask.
const (
	// a colour burst of the expected phase was seen on the line
	ColourLock LineFlags = 0x01

	// the parity of the line in the frame. used to select the PAL V-switch
	// phase
	Parity LineFlags = 0x02

	// the line was decoded in NTSC mode
	NTSC LineFlags = 0x10

	// at least one sample on the line had a cycle width that did not match
	// the decoding mode
	Unstable LineFlags = 0x40
)

// Selector combines sample flags and line flags into the value used to select
// a colour band.
func Selector(f Flags, lf LineFlags) uint8 {
	return (uint8(f) & SelectorMask) | uint8(lf)
}

// Burst values expected on the flags of a burst sample, masked with
// BurstMask, for each television mode.
const (
	BurstMask = uint8(Burst | NTSCClock)
	PALBurst  = uint8(Burst)
	NTSCBurst = uint8(Burst | NTSCClock)
)
