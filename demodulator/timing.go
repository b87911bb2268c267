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

package demodulator

import "github.com/jetsetilly/gopher264/signal"

// timing constants for a television mode. lengths are measured in
// half-cycles of the pixel clock.
type timing struct {
	burst uint8

	lineLength int
	lineStart  int

	hsyncPeriodMin int
	hsyncPeriodMax int

	lineLengthMin int
	lineLengthMax int

	vsyncThreshold1 int
	vsyncThreshold2 int
	vsyncReload     int
	lineReload      int

	// the line length for which no resampling is required
	nominalActive int

	// flags added to the line flags of every line
	lineFlags signal.LineFlags
}

var pal = timing{
	burst:           signal.PALBurst,
	lineLength:      570,
	lineStart:       80,
	hsyncPeriodMin:  494,
	hsyncPeriodMax:  646,
	lineLengthMin:   513,
	lineLengthMax:   627,
	vsyncThreshold1: 338,
	vsyncThreshold2: 264,
	vsyncReload:     -16,
	lineReload:      -6,
	nominalActive:   490,
}

var ntsc = timing{
	burst:           signal.NTSCBurst,
	lineLength:      456,
	lineStart:       64,
	hsyncPeriodMin:  380,
	hsyncPeriodMax:  532,
	lineLengthMin:   399,
	lineLengthMax:   513,
	vsyncThreshold1: 292,
	vsyncThreshold2: 242,
	vsyncReload:     0,
	lineReload:      12,
	nominalActive:   392,
	lineFlags:       signal.NTSC,
}

// LineLength returns the nominal length of a line in half-cycles for the
// television mode.
func LineLength(isNTSC bool) int {
	if isNTSC {
		return ntsc.lineLength
	}
	return pal.lineLength
}

// LineStart returns the offset in half-cycles of the first sample collected
// from each line for the television mode.
func LineStart(isNTSC bool) int {
	if isNTSC {
		return ntsc.lineStart
	}
	return pal.lineStart
}

// NominalActive returns the length in half-cycles of the collected part of a
// line for which no resampling is required.
func NominalActive(isNTSC bool) int {
	if isNTSC {
		return ntsc.nominalActive
	}
	return pal.nominalActive
}
