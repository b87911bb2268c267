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

package convert

import (
	"math"
)

// biquad is a second order IIR filter in direct form I.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2 = f.x1
	f.x1 = x
	f.y2 = f.y1
	f.y1 = y
	return y
}

// setCoefficients normalises the coefficients by a0. filter state is not
// changed.
func (f *biquad) setCoefficients(b0, b1, b2, a0, a1, a2 float64) {
	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = a1 / a0
	f.a2 = a2 / a0
}

// passthrough sets the filter so that output is equal to input.
func (f *biquad) passthrough() {
	f.setCoefficients(1, 0, 0, 1, 0, 0)
}

// lowPass coefficients from the RBJ audio EQ cookbook.
func (f *biquad) lowPass(freq float64, rate float64, q float64) {
	w0 := 2.0 * math.Pi * freq / rate
	alpha := math.Sin(w0) / (2.0 * q)
	cw := math.Cos(w0)
	f.setCoefficients((1.0-cw)/2.0, 1.0-cw, (1.0-cw)/2.0, 1.0+alpha, -2.0*cw, 1.0-alpha)
}

// Equaliser modes.
const (
	EqualiserOff       = -1
	EqualiserPeaking   = 0
	EqualiserLowShelf  = 1
	EqualiserHighShelf = 2
)

// equaliser coefficients from the RBJ audio EQ cookbook. level is the linear
// gain at the centre or shelf frequency.
func (f *biquad) equaliser(mode int, freq float64, level float64, q float64, rate float64) {
	if mode == EqualiserOff || freq <= 0.0 || freq >= rate/2.0 || level <= 0.0 || q <= 0.0 {
		f.passthrough()
		return
	}

	A := math.Sqrt(level)
	w0 := 2.0 * math.Pi * freq / rate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2.0 * q)

	switch mode {
	case EqualiserPeaking:
		f.setCoefficients(1.0+alpha*A, -2.0*cw, 1.0-alpha*A, 1.0+alpha/A, -2.0*cw, 1.0-alpha/A)
	case EqualiserLowShelf:
		sa := 2.0 * math.Sqrt(A) * alpha
		f.setCoefficients(
			A*((A+1.0)-(A-1.0)*cw+sa),
			2.0*A*((A-1.0)-(A+1.0)*cw),
			A*((A+1.0)-(A-1.0)*cw-sa),
			(A+1.0)+(A-1.0)*cw+sa,
			-2.0*((A-1.0)+(A+1.0)*cw),
			(A+1.0)+(A-1.0)*cw-sa,
		)
	case EqualiserHighShelf:
		sa := 2.0 * math.Sqrt(A) * alpha
		f.setCoefficients(
			A*((A+1.0)+(A-1.0)*cw+sa),
			-2.0*A*((A-1.0)+(A+1.0)*cw),
			A*((A+1.0)+(A-1.0)*cw-sa),
			(A+1.0)-(A-1.0)*cw+sa,
			2.0*((A-1.0)-(A+1.0)*cw),
			(A+1.0)-(A-1.0)*cw-sa,
		)
	default:
		f.passthrough()
	}
}

// dcBlock is a one pole high pass filter.
type dcBlock struct {
	r  float64
	x1 float64
	y1 float64
}

func (f *dcBlock) setFrequency(freq float64, rate float64) {
	if freq <= 0.0 {
		f.r = 1.0
		return
	}
	f.r = math.Exp(-2.0 * math.Pi * freq / rate)
}

func (f *dcBlock) process(x float64) float64 {
	// a corner frequency of zero disables the filter
	if f.r >= 1.0 {
		return x
	}
	y := x - f.x1 + f.r*f.y1
	f.x1 = x
	f.y1 = y
	return y
}
