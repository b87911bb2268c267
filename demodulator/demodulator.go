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
	"github.com/jetsetilly/gopher264/colourgen/colourmap"
	"github.com/jetsetilly/gopher264/resample"
	"github.com/jetsetilly/gopher264/signal"
)

// Size of the frame buffer in pixels.
const (
	Width  = 384
	Height = 288
)

// the size of the line buffer in bytes. large enough for the longest
// permitted line made entirely of five byte samples
const lineBufferSize = 720

// the number of cycles a sync pulse must last to be a vertical sync
const vsyncLength = 26

// the number of cycles over which audio is averaged
const audioCycles = 8

// the range of lines decoded into the frame buffer. lines are counted in
// steps of two
const (
	firstLine = 2
	lastLine  = firstLine + Height*2
)

// Receiver is notified of audio and of completed frames. Both functions are
// called synchronously from RunOneCycle().
type Receiver interface {
	// an audio sample at one eighth of the clock frequency
	AudioSample(sample int16)

	// a field has been completed. the frame buffer holds the decoded lines
	FrameDone(frame []uint32)
}

// Stats are running counts of demodulator events.
type Stats struct {
	// number of lines decoded into the frame buffer
	Lines uint64

	// number of lines that required resampling
	Resampled uint64

	// number of vertical sync pulses detected
	VSyncs uint64

	// number of fields completed
	Fields uint64
}

// Demodulator decodes the raw sample stream into frames.
type Demodulator struct {
	cmap *colourmap.Colormap
	recv Receiver

	isNTSC bool
	mode   timing

	frame []uint32

	lineBuf       [lineBufferSize]byte
	lineBufBytes  int
	lineBufLength int
	lineBufFlags  uint8

	audioAcc    int32
	audioCycles int

	syncLengthCnt     int
	hsyncCnt          int
	hsyncPeriodLength int
	lineLengthCnt     int
	lineLength        int
	lineLengthFilter  float64

	vsyncCnt int
	oddFrame bool
	curLine  int

	stats Stats
}

// NewDemodulator is the preferred method of initialisation for the
// Demodulator type. The demodulator starts in PAL mode.
//
// The colourmap should contain pixels in the packed format of the resample
// package. The colourmap is not modified by the demodulator.
func NewDemodulator(cmap *colourmap.Colormap, recv Receiver) *Demodulator {
	d := &Demodulator{
		cmap:  cmap,
		recv:  recv,
		frame: make([]uint32, Width*Height),
	}
	for i := range d.frame {
		d.frame[i] = resample.BlankPixel
	}
	d.reset(false)
	return d
}

// reset sync state and load the timing constants for the mode.
func (d *Demodulator) reset(isNTSC bool) {
	d.isNTSC = isNTSC
	if isNTSC {
		d.mode = ntsc
	} else {
		d.mode = pal
	}

	d.lineBufBytes = 0
	d.lineBufLength = 0
	d.lineBufFlags = 0

	d.syncLengthCnt = 0
	d.hsyncCnt = 0
	d.hsyncPeriodLength = d.mode.lineLength
	d.lineLengthCnt = 0
	d.lineLength = d.mode.lineLength
	d.lineLengthFilter = float64(d.mode.lineLength)
}

// SetNTSCMode changes the television mode. All sync and line state is reset
// if the mode changes.
func (d *Demodulator) SetNTSCMode(isNTSC bool) {
	if isNTSC == d.isNTSC {
		return
	}
	d.reset(isNTSC)
}

// IsNTSC returns true if the demodulator is in NTSC mode.
func (d *Demodulator) IsNTSC() bool {
	return d.isNTSC
}

// Stats returns the current event counts.
func (d *Demodulator) Stats() Stats {
	return d.stats
}

// Frame returns the frame buffer.
func (d *Demodulator) Frame() []uint32 {
	return d.frame
}

// CurrentLine returns the line currently being assembled. Lines are counted
// in steps of two and the first decoded line is line 2.
func (d *Demodulator) CurrentLine() int {
	return d.curLine
}

// LineLength returns the current estimate of the line length in half-cycles.
func (d *Demodulator) LineLength() int {
	return d.lineLength
}

// RunOneCycle processes the sample and audio for one clock cycle. The sample
// should be two or five bytes long depending on the flags in the first byte.
// A short sample is padded with zero bytes.
func (d *Demodulator) RunOneCycle(sample []byte, audio int16) {
	d.audioAcc += int32(audio)
	d.audioCycles++
	if d.audioCycles >= audioCycles {
		d.audioCycles = 0

		// bias to unsigned before the shift to round towards the nearest
		// value
		s := ((d.audioAcc + 262148) >> 3) - 32768
		d.audioAcc = 0
		d.recv.AudioSample(int16(s))
	}

	var c uint8
	if len(sample) > 0 {
		c = sample[0]
	}
	f := signal.Flags(c)

	if f&signal.HSync == signal.HSync {
		if d.syncLengthCnt == 0 {
			d.reacquire()
		}
		d.syncLengthCnt++
		if d.syncLengthCnt >= vsyncLength && d.vsyncCnt >= d.mode.vsyncThreshold2 {
			d.vsyncCnt = d.mode.vsyncReload
			d.oddFrame = d.lineLengthCnt+6 > d.lineLength>>1
			d.stats.VSyncs++
		}
	} else {
		d.syncLengthCnt = 0
	}

	// bit 7 is set if the sample is burst of the expected phase. bit 0 is
	// set if the width of the cycle does not match the mode
	d.lineBufFlags |= 0x80 - ((c ^ d.mode.burst) & signal.BurstMask)

	l := f.Width()

	switch {
	case d.lineLengthCnt < d.mode.lineStart:
		d.lineBufLength = d.lineLengthCnt + l
	case d.lineLengthCnt < d.lineLength:
		n := f.Len()
		if d.lineBufBytes+n <= len(d.lineBuf) {
			m := copy(d.lineBuf[d.lineBufBytes:d.lineBufBytes+n], sample)
			clear(d.lineBuf[d.lineBufBytes+m : d.lineBufBytes+n])
			d.lineBufBytes += n
		}
	default:
		d.lineBufLength = d.lineLengthCnt - d.lineBufLength
		d.lineDone()
	}

	d.lineLengthCnt += l
	d.hsyncCnt += l
}

// reacquire hsync at the start of a sync pulse. stale multiples of the sync
// period are discarded and the period is snapped to the measured count if it
// is within the permitted range.
func (d *Demodulator) reacquire() {
	d.dropStalePeriods()
	if d.hsyncCnt >= d.mode.hsyncPeriodMin {
		d.hsyncPeriodLength = d.hsyncCnt
		d.hsyncCnt = 0
	}
}

func (d *Demodulator) dropStalePeriods() {
	for d.hsyncCnt >= d.mode.hsyncPeriodMax {
		d.hsyncCnt -= d.hsyncPeriodLength
		d.hsyncPeriodLength = (d.hsyncPeriodLength*3 + d.mode.hsyncPeriodMax) >> 2
	}
}

// the maximum correction to the line length made for the phase error of a
// single line
const maxPhaseCorrection = 10

func (d *Demodulator) lineDone() {
	d.lineLengthCnt -= d.lineLength
	d.dropStalePeriods()

	d.lineLengthFilter = d.lineLengthFilter*0.9 + float64(d.hsyncPeriodLength)*0.1
	d.lineLength = int(d.lineLengthFilter + 0.5)

	if d.lineLengthCnt != d.hsyncCnt {
		phaseErr := d.lineLengthCnt - d.hsyncCnt
		if phaseErr >= d.hsyncPeriodLength>>1 {
			phaseErr -= d.hsyncPeriodLength
		}
		if phaseErr <= -(d.hsyncPeriodLength >> 1) {
			phaseErr += d.hsyncPeriodLength
		}

		corr := phaseErr
		if corr < 0 {
			corr = -corr
		}
		corr = min((corr+6)>>2, maxPhaseCorrection)

		if phaseErr >= 0 {
			d.lineLength += corr
		} else {
			d.lineLength -= corr
		}
		d.lineLength = min(max(d.lineLength, d.mode.lineLengthMin), d.mode.lineLengthMax)
	}

	if d.curLine >= firstLine && d.curLine < lastLine {
		d.decodeLine()
	}

	d.lineBufBytes = 0
	d.lineBufLength = 0
	d.lineBufFlags = 0
	d.curLine += 2

	if d.vsyncCnt >= d.mode.vsyncThreshold1 {
		d.vsyncCnt = d.mode.vsyncReload
		d.oddFrame = false
	}

	if d.vsyncCnt == 0 {
		d.curLine = d.mode.lineReload
		if d.oddFrame {
			d.curLine--
		}
		d.stats.Fields++
		d.recv.FrameDone(d.frame)
	}

	d.vsyncCnt++
}
