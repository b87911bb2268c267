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

package testcard

import (
	"fmt"
	"math"

	"github.com/jetsetilly/gopher264/signal"
)

// Pattern is the image drawn in the active part of each line.
type Pattern int

// List of valid Pattern values.
const (
	Bars Pattern = iota
	Ramp
	Checker
	Black
)

func (p Pattern) String() string {
	switch p {
	case Bars:
		return "bars"
	case Ramp:
		return "ramp"
	case Checker:
		return "checker"
	case Black:
		return "black"
	}
	return "unknown pattern"
}

// PatternFromString returns the Pattern with the name s.
func PatternFromString(s string) (Pattern, error) {
	for _, p := range []Pattern{Bars, Ramp, Checker, Black} {
		if p.String() == s {
			return p, nil
		}
	}
	return Black, fmt.Errorf("testcard: unrecognised pattern: %s", s)
}

// Line and field geometry measured in cycles and lines.
const (
	CyclesPerLine = 114
	HSyncCycles   = 8
	BurstStart    = 10
	ActiveStart   = 16
	ActiveCycles  = CyclesPerLine - ActiveStart
	VSyncLines    = 3

	// the number of cycles before the end of a line that a broad sync pulse
	// ends
	broadSyncGap = 4

	PALLinesPerField  = 312
	NTSCLinesPerField = 262

	// the first and last lines in each field that have active video
	firstVisible = 20
	lastVisible  = 300
)

// Clock frequencies in Hz for each mode.
const (
	PALClock  = 1773448
	NTSCClock = 1789773
)

// the frequency of the test tone in Hz
const toneFrequency = 1000.0

// the amplitude of the test tone
const toneLevel = 8000.0

// Card generates one sample per call to Next().
type Card struct {
	isNTSC    bool
	interlace bool
	pattern   Pattern

	field int
	line  int
	cycle int

	// phase of the test tone in radians and the step per cycle
	phase float64
	step  float64

	buf [5]byte
}

// NewCard is the preferred method of initialisation for the Card type. If
// interlace is true then the vertical sync of every odd field starts half way
// along the line.
func NewCard(isNTSC bool, pattern Pattern, interlace bool) *Card {
	c := &Card{
		isNTSC:    isNTSC,
		interlace: interlace,
		pattern:   pattern,
	}
	c.step = 2 * math.Pi * toneFrequency / float64(c.ClockFrequency())
	return c
}

// IsNTSC returns true if the card is generating an NTSC signal.
func (c *Card) IsNTSC() bool {
	return c.isNTSC
}

// ClockFrequency returns the frequency in Hz at which samples should be
// clocked.
func (c *Card) ClockFrequency() int {
	if c.isNTSC {
		return NTSCClock
	}
	return PALClock
}

// LinesPerField returns the number of lines in a single field.
func (c *Card) LinesPerField() int {
	if c.isNTSC {
		return NTSCLinesPerField
	}
	return PALLinesPerField
}

// CyclesPerField returns the number of samples in a single field.
func (c *Card) CyclesPerField() int {
	return c.LinesPerField() * CyclesPerLine
}

// Field returns the number of completed fields.
func (c *Card) Field() int {
	return c.field
}

// Position returns the field, line and cycle of the sample that will be
// returned by the next call to Next().
func (c *Card) Position() (int, int, int) {
	return c.field, c.line, c.cycle
}

// Next returns the next sample and the audio level for the cycle. The
// returned slice is reused by the next call to Next().
func (c *Card) Next() ([]byte, int16) {
	s := c.sample()

	audio := int16(math.Sin(c.phase) * toneLevel)
	c.phase += c.step
	if c.phase > 2*math.Pi {
		c.phase -= 2 * math.Pi
	}

	c.cycle++
	if c.cycle >= CyclesPerLine {
		c.cycle = 0
		c.line++
		if c.line >= c.LinesPerField() {
			c.line = 0
			c.field++
		}
	}

	return s, audio
}

func (c *Card) sync() bool {
	if c.cycle < HSyncCycles {
		return true
	}
	if c.line >= VSyncLines {
		return false
	}
	if c.interlace && c.field&1 == 1 {
		if c.line == 0 {
			return c.cycle >= CyclesPerLine/2 && c.cycle < CyclesPerLine-broadSyncGap
		}
		if c.line == VSyncLines-1 {
			return c.cycle < CyclesPerLine/2
		}
	}
	return c.cycle < CyclesPerLine-broadSyncGap
}

func (c *Card) sample() []byte {
	var f signal.Flags
	if c.isNTSC {
		f |= signal.NTSCClock
	}
	if !c.isNTSC && c.line&1 == 1 {
		f |= signal.OddLine
	}

	visible := c.line >= firstVisible && c.line < lastVisible

	switch {
	case c.sync():
		f |= signal.HSync | signal.HBlank
	case c.cycle < ActiveStart:
		f |= signal.HBlank
		if c.cycle >= BurstStart {
			f |= signal.Burst
		}
	case !visible:
		f |= signal.VBlank
	}

	c.buf[0] = uint8(f)

	if f&(signal.HBlank|signal.VBlank) != 0 || c.pattern == Black {
		c.buf[1] = 0
		return c.buf[:2]
	}

	x := c.cycle - ActiveStart

	switch c.pattern {
	case Bars:
		// eight bars of full brightness colour
		c.buf[1] = barColours[x*len(barColours)/ActiveCycles]
		return c.buf[:2]
	case Ramp:
		// luminance steps left to right, four pixels per cycle
		f |= signal.FourPixels
		c.buf[0] = uint8(f)
		lum := uint8(x * 8 / ActiveCycles)
		for i := 1; i < 5; i++ {
			c.buf[i] = 0x01 | lum<<4
		}
		return c.buf[:5]
	case Checker:
		f |= signal.FourPixels
		c.buf[0] = uint8(f)
		on := ((x>>2)^(c.line>>4))&1 == 1
		for i := 1; i < 5; i++ {
			if on {
				c.buf[i] = 0x71
			} else {
				c.buf[i] = 0x00
			}
		}
		return c.buf[:5]
	}

	c.buf[1] = 0
	return c.buf[:2]
}

// colour indexes of the bars. bits 0 to 3 are the colour and bits 4 to 6 the
// brightness
var barColours = [...]uint8{0x71, 0x57, 0x53, 0x55, 0x45, 0x32, 0x26, 0x00}
