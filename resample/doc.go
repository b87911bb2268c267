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

// Package resample converts frames arriving at an irregular rate into frames
// at a fixed rate. Each output frame is a temporal blend of the two most
// recent input frames, weighted by how much of the output frame's duration
// each input frame covers.
//
// Input frames are packed pixels as produced by the decoder. A packed pixel
// holds Y in bits 0 to 7, U in bits 10 to 17 and V in bits 20 to 27. The
// spare bits between the components allow pixels to be summed without one
// component overflowing into the next. Output frames are planar 4:2:0 with
// the chroma planes at half horizontal and half vertical resolution.
//
// Time is measured in microseconds as 32.32 fixed point values. All pixel
// arithmetic is integer so that output is reproducible on every platform.
package resample
