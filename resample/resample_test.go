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

package resample_test

import (
	"testing"

	"github.com/jetsetilly/gopher264/resample"
	"github.com/jetsetilly/gopher264/test"
)

const (
	width  = 16
	height = 8
)

func TestInvalidSize(t *testing.T) {
	_, err := resample.NewResampler(0, 8)
	test.ExpectFailure(t, err)
	_, err = resample.NewResampler(15, 8)
	test.ExpectFailure(t, err)
	_, err = resample.NewResampler(16, 7)
	test.ExpectFailure(t, err)
	_, err = resample.NewResampler(width, height)
	test.ExpectSuccess(t, err)
}

func TestPacking(t *testing.T) {
	test.ExpectEquality(t, resample.Pack(0x808010), resample.BlankPixel)
	test.ExpectEquality(t, resample.Unpack(resample.BlankPixel), uint32(0x808010))
	test.ExpectEquality(t, resample.Unpack(resample.Pack(0x123456)), uint32(0x123456))

	// components are averaged independently with rounding
	a := resample.Average(resample.Pack(0x0000ff), resample.Pack(0xff0000))
	test.ExpectEquality(t, resample.Unpack(a), uint32(0x800080))
	a = resample.Average(resample.Pack(0x010101), resample.Pack(0x020202))
	test.ExpectEquality(t, resample.Unpack(a), uint32(0x020202))
}

func TestInitialOutput(t *testing.T) {
	r, err := resample.NewResampler(width, height)
	test.DemandSuccess(t, err)

	out := r.Output()
	test.ExpectEquality(t, out.Size(), width*height*3/2)
	test.ExpectEquality(t, out.Y[0], uint8(0x10))
	test.ExpectEquality(t, out.U[0], uint8(0x80))
	test.ExpectEquality(t, out.V[0], uint8(0x80))

	f0, f1 := r.FrameTimes()
	test.ExpectEquality(t, f0, int64(-1))
	test.ExpectEquality(t, f1, int64(0))
}

// session mimics the way a capture session drives the resampler. input frames
// arrive every fieldTime and audio arrives in real time, so an output frame is
// produced whenever a whole frame of audio has been buffered.
type session struct {
	r       *resample.Resampler
	frame   []uint32
	now     int64
	pending int64
	outputs int
}

const (
	fieldTime = resample.OneSecond / 50
	frameTime = resample.OneSecond / 25
)

func (s *session) field(t *testing.T, pixel uint32, check func(resample.Planes)) {
	t.Helper()
	for i := range s.frame {
		s.frame[i] = pixel
	}
	s.now += fieldTime
	s.r.Resample(s.frame, s.now)
	s.pending += fieldTime

	for s.pending >= frameTime {
		s.pending -= frameTime
		ft := s.r.Interpolate(frameTime)
		if check != nil {
			check(s.r.Output())
		}
		s.outputs++
		s.r.Shift(ft)
		s.now -= ft
	}
	s.now += s.r.Align(s.pending)
}

func newSession(t *testing.T) *session {
	r, err := resample.NewResampler(width, height)
	test.DemandSuccess(t, err)
	return &session{
		r:     r,
		frame: make([]uint32, width*height),
	}
}

func TestFrameReset(t *testing.T) {
	s := newSession(t)
	s.field(t, resample.Pack(0x102030), nil)
	for _, p := range s.frame {
		test.ExpectEquality(t, p, resample.BlankPixel)
	}
}

func TestConstantInput(t *testing.T) {
	s := newSession(t)

	pixel := resample.Pack(0x4060c8)
	for range 20 {
		s.field(t, pixel, nil)
	}
	test.ExpectEquality(t, s.outputs, 10)

	var checked bool
	s.field(t, pixel, nil)
	s.field(t, pixel, func(out resample.Planes) {
		checked = true
		for i := range out.Y {
			test.ExpectApproximate(t, int(out.Y[i]), 0xc8, 1, i)
		}
		for i := range out.U {
			test.ExpectApproximate(t, int(out.U[i]), 0x60, 1, i)
			test.ExpectApproximate(t, int(out.V[i]), 0x40, 1, i)
		}
	})
	test.ExpectSuccess(t, checked)
}

func TestBlend(t *testing.T) {
	s := newSession(t)

	for range 20 {
		s.field(t, resample.Pack(0x808020), nil)
	}

	// output frames after a change of input move from one value to the
	// other without overshooting
	prev := 0x20
	for range 6 {
		s.field(t, resample.Pack(0x8080e0), func(out resample.Planes) {
			y := int(out.Y[0])
			test.ExpectRange(t, y, prev-1, 0xe0+1)
			prev = y
		})
	}
	test.ExpectApproximate(t, prev, 0xe0, 1)
}

func TestIrregularInput(t *testing.T) {
	s := newSession(t)

	// fields that are slightly longer than nominal still produce one
	// output frame per frame of audio
	for i := range 100 {
		for j := range s.frame {
			s.frame[j] = resample.Pack(0x8080a0)
		}
		d := fieldTime + int64(i%3)*(fieldTime/100)
		s.now += d
		s.r.Resample(s.frame, s.now)
		s.pending += d
		for s.pending >= frameTime {
			s.pending -= frameTime
			ft := s.r.Interpolate(frameTime)
			if i >= 10 {
				test.ExpectApproximate(t, int(s.r.Output().Y[0]), 0xa0, 2, i)
			}
			s.outputs++
			s.r.Shift(ft)
			s.now -= ft
		}
		s.now += s.r.Align(s.pending)
	}
	test.ExpectApproximate(t, s.outputs, 50, 2)
}
