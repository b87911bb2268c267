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

package resample

import (
	"github.com/jetsetilly/gopher264/curated"
)

// OneSecond is the length of one second in the 32.32 fixed point microsecond
// time used by the package.
const OneSecond = int64(1000000) << 32

// round a 32.32 fixed point time to whole microseconds
func microseconds(t int64) int32 {
	return int32((t + 0x80000000) >> 32)
}

// Resampler blends input frames into fixed rate output frames.
type Resampler struct {
	width  int
	height int

	// the two most recent input frames. the newest frame is at index
	// newest and the other index is the previous frame
	frames [2]Planes
	newest int

	interp accumulator
	out    Planes

	// times of the previous and newest frames
	frame0Time int64
	frame1Time int64

	// the length of time covered by the accumulator, in microseconds
	interpTime int32
}

// NewResampler is the preferred method of initialisation for the Resampler
// type. Width and height must be positive and even.
func NewResampler(width, height int) (*Resampler, error) {
	if width <= 0 || height <= 0 || width&1 != 0 || height&1 != 0 {
		return nil, curated.Errorf("resample: invalid frame size (%dx%d)", width, height)
	}

	r := &Resampler{
		width:      width,
		height:     height,
		frames:     [2]Planes{newPlanes(width, height), newPlanes(width, height)},
		newest:     1,
		interp:     newAccumulator(width, height),
		out:        newPlanes(width, height),
		frame0Time: -1,
		frame1Time: 0,
	}

	return r, nil
}

// Output returns the most recent output frame. The returned planes are
// overwritten by the next call to Interpolate().
func (r *Resampler) Output() Planes {
	return r.out
}

// FrameTimes returns the times of the previous and newest input frames.
func (r *Resampler) FrameTimes() (int64, int64) {
	return r.frame0Time, r.frame1Time
}

// Resample adds a new input frame. The frame is made up of packed pixels and
// must be of the size given to NewResampler(). Every pixel in the frame is
// reset to BlankPixel.
//
// The now argument is the time at which the frame was completed.
func (r *Resampler) Resample(frame []uint32, now int64) {
	r.frame0Time = r.frame1Time
	r.frame1Time = now

	scaleFac := microseconds(r.frame1Time - r.frame0Time)
	r.interpTime += scaleFac

	// the previous frame is the one to be replaced
	r.newest ^= 1
	f0 := &r.frames[r.newest^1]
	f1 := &r.frames[r.newest]

	w := r.width
	cw := w >> 1

	for y := 0; y < r.height; y += 2 {
		l0 := y * w
		l1 := l0 + w
		c := (y >> 1) * cw

		for x := 0; x < w; x += 2 {
			p0 := frame[l0+x]
			p1 := frame[l0+x+1]
			p2 := frame[l1+x]
			p3 := frame[l1+x+1]
			frame[l0+x] = BlankPixel
			frame[l0+x+1] = BlankPixel
			frame[l1+x] = BlankPixel
			frame[l1+x+1] = BlankPixel

			r.addY(f0, f1, l0+x, p0, scaleFac)
			r.addY(f0, f1, l0+x+1, p1, scaleFac)
			r.addY(f0, f1, l1+x, p2, scaleFac)
			r.addY(f0, f1, l1+x+1, p3, scaleFac)

			sum := p0 + p1 + p2 + p3 + 0x00200800
			ci := c + (x >> 1)

			v := uint8((sum >> 22) & 0xff)
			f1.V[ci] = v
			r.interp.V[ci] += (int32(f0.V[ci]) + int32(v)) * scaleFac

			u := uint8((sum >> 12) & 0xff)
			f1.U[ci] = u
			r.interp.U[ci] += (int32(f0.U[ci]) + int32(u)) * scaleFac
		}
	}
}

func (r *Resampler) addY(f0, f1 *Planes, i int, p uint32, scaleFac int32) {
	y := uint8(p & 0xff)
	f1.Y[i] = y
	r.interp.Y[i] += (int32(f0.Y[i]) + int32(y)) * scaleFac
}

// Interpolate creates an output frame that ends frameDuration after the
// start of the current accumulation, or at the time of the newest input
// frame if that is sooner. The end time of the output frame is returned.
//
// The caller should follow a call to Interpolate() with a call to Shift()
// with the returned time, once the output frame has been consumed.
func (r *Resampler) Interpolate(frameDuration int64) int64 {
	frameTime := min(frameDuration, r.frame1Time)

	t0 := microseconds(frameTime - r.frame0Time)
	t1 := microseconds(r.frame1Time - frameTime)

	// the position of the output frame boundary between the two input
	// frames
	var tt float64
	if t0+t1 != 0 {
		tt = float64(t0) / (float64(t0) + float64(t1))
	}
	scaleFac0 := int32(float64(t1)*(1.0-tt) + 0.5)
	scaleFac1 := int32(float64(t1)*(1.0+tt) + 0.5)

	// a zero length accumulation would be a division by zero. this can only
	// happen with a degenerate input clock
	d := r.interpTime - t1
	if d == 0 {
		d = 1
	}
	outScale := int32(0x20000000) / d
	r.interpTime = t1

	f0 := &r.frames[r.newest^1]
	f1 := &r.frames[r.newest]

	interpolate(r.out.Y, r.interp.Y, f0.Y, f1.Y, scaleFac0, scaleFac1, outScale)
	interpolate(r.out.U, r.interp.U, f0.U, f1.U, scaleFac0, scaleFac1, outScale)
	interpolate(r.out.V, r.interp.V, f0.V, f1.V, scaleFac0, scaleFac1, outScale)

	return frameTime
}

func interpolate(out []uint8, interp []int32, f0, f1 []uint8, scaleFac0, scaleFac1, outScale int32) {
	for i := range out {
		tmp := int32(f0[i])*scaleFac0 + int32(f1[i])*scaleFac1
		out[i] = uint8((((interp[i]-tmp)>>8)*outScale + 0x00200000) >> 22)
		interp[i] = tmp
	}
}

// Shift moves the time origin forward by the specified amount.
func (r *Resampler) Shift(t int64) {
	r.frame0Time -= t
	r.frame1Time -= t
}

// Align moves the newest frame to the specified time, moving the previous
// frame by the same amount. The amount of the move is returned.
func (r *Resampler) Align(t int64) int64 {
	d := t - r.frame1Time
	r.frame0Time += d
	r.frame1Time = t
	return d
}
