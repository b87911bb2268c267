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

// Package convert implements a mono audio sample rate converter. Samples are
// sent to the converter one at a time at the input rate and are delivered to
// the output callback at the output rate.
//
// The converter low-pass filters the input before resampling to avoid
// aliasing. Output samples pass through an optional parametric equaliser and
// two DC blocking filters before being scaled and saturated to 16bit.
//
// The output callback receives a left and right sample. The converter is
// mono so the two values are always the same but the callback signature
// matches that of a stereo mixer.
package convert
