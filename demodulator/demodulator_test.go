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

package demodulator_test

import (
	"testing"

	"github.com/jetsetilly/gopher264/colourgen"
	"github.com/jetsetilly/gopher264/colourgen/colourmap"
	"github.com/jetsetilly/gopher264/demodulator"
	"github.com/jetsetilly/gopher264/resample"
	"github.com/jetsetilly/gopher264/signal"
	"github.com/jetsetilly/gopher264/test"
	"github.com/jetsetilly/gopher264/testcard"
)

type receiver struct {
	d      *demodulator.Demodulator
	audio  []int16
	fields int

	// copy of the frame at the most recent FrameDone()
	frame []uint32

	// the value of CurrentLine() at every FrameDone()
	reload []int
}

func (r *receiver) AudioSample(s int16) {
	r.audio = append(r.audio, s)
}

func (r *receiver) FrameDone(frame []uint32) {
	r.fields++
	r.frame = append(r.frame[:0], frame...)
	r.reload = append(r.reload, r.d.CurrentLine())
}

func newColormap() *colourmap.Colormap {
	params := colourgen.DefaultParameters()
	params.IndexToYUV = colourgen.TED
	cmap := colourmap.NewColormap()
	cmap.Build(params, colourmap.YUV)
	cmap.Each(resample.Pack)
	return cmap
}

func newDemodulator(cmap *colourmap.Colormap) (*demodulator.Demodulator, *receiver) {
	r := &receiver{}
	d := demodulator.NewDemodulator(cmap, r)
	r.d = d
	return d, r
}

func runCard(d *demodulator.Demodulator, card *testcard.Card, fields int) {
	for range fields * card.CyclesPerField() {
		s, a := card.Next()
		d.RunOneCycle(s, a)
	}
}

func TestInitialState(t *testing.T) {
	d, _ := newDemodulator(newColormap())
	test.ExpectEquality(t, d.IsNTSC(), false)
	test.ExpectEquality(t, d.LineLength(), demodulator.LineLength(false))
	test.ExpectEquality(t, len(d.Frame()), demodulator.Width*demodulator.Height)
	for _, p := range d.Frame() {
		if !test.ExpectEquality(t, p, resample.BlankPixel) {
			break
		}
	}
}

func TestAudioAverage(t *testing.T) {
	d, r := newDemodulator(newColormap())
	for range 8 {
		d.RunOneCycle([]byte{0, 0}, 1000)
	}
	for range 8 {
		d.RunOneCycle([]byte{0, 0}, -1000)
	}
	for range 7 {
		d.RunOneCycle([]byte{0, 0}, 32767)
	}
	test.ExpectEquality(t, len(r.audio), 2)
	test.ExpectEquality(t, r.audio[0], int16(1000))
	test.ExpectEquality(t, r.audio[1], int16(-1000))

	// full scale
	d.RunOneCycle([]byte{0, 0}, 32767)
	test.ExpectEquality(t, len(r.audio), 3)
	test.ExpectEquality(t, r.audio[2], int16(32767))
}

func TestShortSample(t *testing.T) {
	d, _ := newDemodulator(newColormap())

	// short and empty samples must not panic
	for range 10000 {
		d.RunOneCycle([]byte{uint8(signal.FourPixels)}, 0)
		d.RunOneCycle(nil, 0)
	}
}

func TestFields(t *testing.T) {
	for _, ntsc := range []bool{false, true} {
		d, r := newDemodulator(newColormap())
		d.SetNTSCMode(ntsc)

		card := testcard.NewCard(ntsc, testcard.Bars, false)
		runCard(d, card, 10)

		// the first field is completed at the end of the first line. the
		// vertical sync of the first field is missed because the sync
		// counter has not reached the threshold
		test.ExpectEquality(t, r.fields, 10, ntsc)
		test.ExpectEquality(t, d.Stats().Fields, uint64(10), ntsc)
		test.ExpectEquality(t, d.Stats().VSyncs, uint64(9), ntsc)
		test.ExpectEquality(t, len(r.audio), 10*card.CyclesPerField()/8, ntsc)

		// a stable signal never needs resampling
		test.ExpectEquality(t, d.Stats().Resampled, uint64(0), ntsc)
		test.ExpectEquality(t, d.LineLength(), demodulator.LineLength(ntsc), ntsc)
	}
}

func TestInterlace(t *testing.T) {
	for _, ntsc := range []bool{false, true} {
		d, r := newDemodulator(newColormap())
		d.SetNTSCMode(ntsc)

		card := testcard.NewCard(ntsc, testcard.Bars, true)
		runCard(d, card, 6)

		even := -6
		if ntsc {
			even = 12
		}
		test.ExpectEquality(t, len(r.reload), 6, ntsc)
		for i, l := range r.reload {
			if i&1 == 1 {
				test.ExpectEquality(t, l, even-1, ntsc, i)
			} else {
				test.ExpectEquality(t, l, even, ntsc, i)
			}
		}
	}
}

func TestFastPath(t *testing.T) {
	cmap := newColormap()
	d, r := newDemodulator(cmap)

	card := testcard.NewCard(false, testcard.Bars, false)

	// active samples of the second field
	lines := make(map[int][][]byte)

	for r.fields < 3 {
		field, line, cycle := card.Position()
		s, a := card.Next()
		if field == 1 && cycle >= testcard.ActiveStart {
			lines[line] = append(lines[line], append([]byte{}, s...))
		}
		d.RunOneCycle(s, a)
	}

	// the first row of the frame is five lines after the line on which the
	// field was completed. the field is completed sixteen lines after the
	// vertical sync
	const firstRow = 21

	var pixels [4]uint32
	for row := range demodulator.Height {
		lf := signal.ColourLock
		if row&1 == 1 {
			lf |= signal.Parity
		}

		samples := lines[firstRow+row]
		for x := 0; x < demodulator.Width; x += 4 {
			n := cmap.ConvertFourPixels(pixels[:], samples[x/4], lf)
			test.DemandEquality(t, n, len(samples[x/4]))
			for i := range 4 {
				if !test.ExpectEquality(t, r.frame[row*demodulator.Width+x+i], pixels[i], row, x+i) {
					return
				}
			}
		}
	}
}

// feed lines of alternating length to the demodulator. the lines are
// stable white with sync and burst
func feedJitter(d *demodulator.Demodulator, fields int) {
	sample := []byte{0, 0x71}
	for range fields {
		for line := range testcard.PALLinesPerField {
			n := testcard.CyclesPerLine + 1
			if line&1 == 1 {
				n = testcard.CyclesPerLine - 1
			}
			for cycle := range n {
				var f signal.Flags
				switch {
				case cycle < testcard.HSyncCycles:
					f = signal.HSync | signal.HBlank
				case line < testcard.VSyncLines && cycle < n-4:
					f = signal.HSync | signal.HBlank
				case cycle < testcard.BurstStart:
					f = signal.HBlank
				case cycle < testcard.ActiveStart:
					f = signal.HBlank | signal.Burst
				}
				sample[0] = uint8(f)
				d.RunOneCycle(sample, 0)
			}
		}
	}
}

func TestJitter(t *testing.T) {
	d, r := newDemodulator(newColormap())
	feedJitter(d, 6)

	test.ExpectInequality(t, d.Stats().Resampled, uint64(0))
	test.ExpectRange(t, d.LineLength(), 560, 580)
	test.ExpectRange(t, r.fields, 5, 6)

	// every pixel of the visible rows is filled
	for row := range 270 {
		for x := range demodulator.Width {
			if !test.ExpectInequality(t, r.frame[row*demodulator.Width+x], resample.BlankPixel, row, x) {
				return
			}
		}
	}
}

func TestModeChange(t *testing.T) {
	d, r := newDemodulator(newColormap())

	d.SetNTSCMode(true)
	test.ExpectEquality(t, d.IsNTSC(), true)
	test.ExpectEquality(t, d.LineLength(), demodulator.LineLength(true))

	runCard(d, testcard.NewCard(true, testcard.Ramp, false), 3)
	test.ExpectEquality(t, r.fields, 3)

	// setting the same mode is not a reset and the field count continues
	d.SetNTSCMode(true)
	runCard(d, testcard.NewCard(true, testcard.Ramp, false), 1)
	test.ExpectEquality(t, r.fields, 4)

	d.SetNTSCMode(false)
	test.ExpectEquality(t, d.IsNTSC(), false)
	test.ExpectEquality(t, d.LineLength(), demodulator.LineLength(false))

	// the demodulator locks to the new mode
	before := r.fields
	runCard(d, testcard.NewCard(false, testcard.Ramp, false), 4)
	test.ExpectRange(t, r.fields-before, 3, 5)
	test.ExpectEquality(t, d.LineLength(), demodulator.LineLength(false))
}

func TestModeChangeMidLine(t *testing.T) {
	cmap := newColormap()
	d, r := newDemodulator(cmap)

	// stop the PAL signal part way through a visible line
	pal := testcard.NewCard(false, testcard.Checker, false)
	for {
		field, line, cycle := pal.Position()
		if field == 1 && line == 100 && cycle == testcard.CyclesPerLine/2 {
			break
		}
		s, a := pal.Next()
		d.RunOneCycle(s, a)
	}

	d.SetNTSCMode(true)
	test.ExpectEquality(t, d.LineLength(), demodulator.LineLength(true))

	// active samples of every NTSC line indexed by field and line
	type key struct{ field, line int }
	lines := make(map[key][][]byte)

	ntsc := testcard.NewCard(true, testcard.Bars, false)
	before := r.fields
	for r.fields < before+5 {
		field, line, cycle := ntsc.Position()
		s, a := ntsc.Next()
		if cycle >= testcard.ActiveStart {
			k := key{field, line}
			lines[k] = append(lines[k], append([]byte{}, s...))
		}
		d.RunOneCycle(s, a)
	}

	// the lines of the NTSC signal are decoded with the NTSC colour bands
	expected := func(row int, samples [][]byte, lf signal.LineFlags, phase int) bool {
		if (row+phase)&1 == 1 {
			lf |= signal.Parity
		}
		var pixels [4]uint32
		for x := 0; x < demodulator.Width; x += 4 {
			if x/4 >= len(samples) {
				return false
			}
			cmap.ConvertFourPixels(pixels[:], samples[x/4], lf)
			for i := range 4 {
				if r.frame[row*demodulator.Width+x+i] != pixels[i] {
					return false
				}
			}
		}
		return true
	}

	const firstRow = 10
	const lastRow = 200

	// find the field and the line of the card that the rows of the most
	// recent frame were decoded from. the parity of the first row depends
	// on the field reload value
	matches := func(lf signal.LineFlags) bool {
		for field := range ntsc.Field() + 1 {
			for offset := -10; offset < 60; offset++ {
				for phase := range 2 {
					ok := true
					for row := firstRow; row < lastRow && ok; row++ {
						ok = expected(row, lines[key{field, offset + row}], lf, phase)
					}
					if ok {
						return true
					}
				}
			}
		}
		return false
	}

	test.ExpectSuccess(t, matches(signal.NTSC|signal.ColourLock))

	// the same samples do not match the PAL colour bands
	test.ExpectFailure(t, matches(signal.ColourLock))
}
