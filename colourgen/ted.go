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

package colourgen

import (
	"math"
)

// luminance for each of the eight brightness levels of the TED colour index
var tedLuminance = [8]float64{
	0.180, 0.235, 0.261, 0.341, 0.506, 0.661, 0.753, 0.993,
}

// colour phase in degrees for each of the 16 TED colours. the second half of
// the table is for colour values with bit 7 set, which the video chip uses to
// produce PAL artefact colours
var tedPhase = [32]float64{
	0.0, 0.0, 103.0, 283.0, 53.0, 241.0, 347.0, 167.0,
	124.5, 148.0, 195.0, 83.0, 265.0, 323.0, 1.5, 213.0,
	27.5, 68.0, 136.0, 227.0, 303.0, 33.5, 48.0, 60.0,
	70.5, 80.5, 99.5, 109.5, 120.0, 132.0, 146.5, 180.0,
}

const (
	tedBlack      = 0.035
	tedSaturation = 0.18
	tedLumaScale  = 0.95
)

type ted struct{}

// TED is the IndexToYUV implementation for the Plus/4 video chip. Bits 0 to 3
// of the index select the colour and bits 4 to 6 the brightness. Bit 7
// selects the alternative phase table.
var TED IndexToYUV = ted{}

func (ted) IndexToYUV(index uint8, _ bool) (float64, float64, float64) {
	c := (index & 0x0f) | ((index & 0x80) >> 3)
	b := (index & 0x70) >> 4

	y := tedBlack
	if c != 0 {
		y = tedLuminance[b]
	}

	var u, v float64
	if c > 1 {
		phi := tedPhase[c] * math.Pi / 180.0
		u = math.Cos(phi) * tedSaturation
		if c < 0x15 {
			v = math.Sin(phi) * tedSaturation
		}
	}

	return y * tedLumaScale, u, v
}
