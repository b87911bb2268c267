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

import (
	"github.com/jetsetilly/gopher264/resample"
	"github.com/jetsetilly/gopher264/signal"
)

// the width of a cycle in the resampling ratio. the ratio is measured in
// fifths of a half-cycle
const (
	palCycleWidth  = 980
	ntscCycleWidth = 784
)

func (d *Demodulator) lineFlags() signal.LineFlags {
	lf := d.mode.lineFlags
	if (^d.curLine)&2 == 2 {
		lf |= signal.Parity
	}
	if d.lineBufFlags&0x80 == 0x80 {
		lf |= signal.ColourLock
	}
	if d.lineBufFlags&0x01 == 0x01 {
		lf |= signal.Unstable
	}
	return lf
}

// decodeLine converts the line buffer into one row of the frame buffer.
func (d *Demodulator) decodeLine() {
	row := (d.curLine - firstLine) >> 1
	out := d.frame[row*Width : (row+1)*Width]
	in := d.lineBuf[:d.lineBufBytes]
	lf := d.lineFlags()

	d.stats.Lines++

	var xc int

	// a stable line of the nominal length maps directly onto the row
	if d.lineBufLength == d.mode.nominalActive && d.lineBufFlags&0x01 == 0 {
		for xc < Width && len(in) > 0 {
			n := d.cmap.ConvertFourPixels(out[xc:xc+4], in, lf)
			if n == 0 {
				break
			}
			in = in[n:]
			xc += 4
		}
		for ; xc < Width; xc++ {
			out[xc] = resample.BlankPixel
		}
		return
	}

	d.stats.Resampled++

	var tmp [4]uint32
	var bufPos int
	readPos := 4
	cycleWidth := palCycleWidth
	cnt := 0

	// reload tmp with the next four pixels. returns false if there are no
	// more samples in the line buffer
	reload := func() bool {
		readPos &= 3
		if bufPos >= d.lineBufBytes {
			return false
		}
		if d.lineBuf[bufPos]&uint8(signal.NTSCClock) == uint8(signal.NTSCClock) {
			cycleWidth = ntscCycleWidth
		} else {
			cycleWidth = palCycleWidth
		}
		n := d.cmap.ConvertFourPixels(tmp[:], d.lineBuf[bufPos:d.lineBufBytes], lf)
		if n == 0 {
			return false
		}
		bufPos += n
		return true
	}

	for xc < Width {
		if readPos >= 4 && !reload() {
			break
		}
		p0 := tmp[readPos]
		cnt += d.lineBufLength
		if cnt >= cycleWidth {
			cnt -= cycleWidth
			readPos++
			if readPos >= 4 && !reload() {
				break
			}
		}
		p1 := tmp[readPos]
		cnt += d.lineBufLength
		if cnt >= cycleWidth {
			cnt -= cycleWidth
			readPos++
		}
		out[xc] = resample.Average(p0, p1)
		xc++
	}

	for ; xc < Width; xc++ {
		out[xc] = resample.BlankPixel
	}
}
