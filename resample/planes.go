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

// BlankPixel is the packed pixel value for black. Input frames are reset to
// this value after they have been resampled.
const BlankPixel = uint32(0x08020010)

// Pack converts a pixel with V, U and Y in the three least significant bytes
// into the packed format.
func Pack(p uint32) uint32 {
	return ((p & 0x00ff0000) << 4) | ((p & 0x0000ff00) << 2) | (p & 0x000000ff)
}

// Unpack converts a packed pixel back into a pixel with V, U and Y in the
// three least significant bytes.
func Unpack(p uint32) uint32 {
	return ((p >> 4) & 0x00ff0000) | ((p >> 2) & 0x0000ff00) | (p & 0x000000ff)
}

// Average returns the average of two packed pixels. Each component is
// rounded independently.
func Average(p0, p1 uint32) uint32 {
	return ((p0 + p1 + 0x00100401) >> 1) & 0x0ff3fcff
}

// Planes is a 4:2:0 planar image.
type Planes struct {
	Width  int
	Height int

	Y []uint8
	U []uint8
	V []uint8
}

func newPlanes(width, height int) Planes {
	p := Planes{
		Width:  width,
		Height: height,
		Y:      make([]uint8, width*height),
		U:      make([]uint8, (width/2)*(height/2)),
		V:      make([]uint8, (width/2)*(height/2)),
	}
	p.clear()
	return p
}

// clear planes to black.
func (p *Planes) clear() {
	for i := range p.Y {
		p.Y[i] = 0x10
	}
	for i := range p.U {
		p.U[i] = 0x80
		p.V[i] = 0x80
	}
}

// Size returns the number of bytes required to store the planes.
func (p Planes) Size() int {
	return len(p.Y) + len(p.U) + len(p.V)
}

// accumulator planes have the same layout as Planes but hold the running
// integral of each component over time.
type accumulator struct {
	Y []int32
	U []int32
	V []int32
}

func newAccumulator(width, height int) accumulator {
	return accumulator{
		Y: make([]int32, width*height),
		U: make([]int32, (width/2)*(height/2)),
		V: make([]int32, (width/2)*(height/2)),
	}
}
