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

// Package capture is the capture session. A Capture owns the colourmap, the
// demodulator, the frame resampler, the audio converter and ring buffer and
// the AVI writer, and drives them from a single call to RunOneCycle() for
// every clock cycle of the emulated video chip.
//
// Output frames are produced at a fixed 25 frames per second whenever a full
// frame of audio has been buffered. Each output frame is a blend of the two
// most recently completed fields, so the drifting field rate of the emulated
// machine never causes dropped or repeated frames. Output frames are
// produced whether or not a file is open, so that the picture and sound stay
// aligned when a file is opened part way through a session.
//
// All work is synchronous. The Capture type is not safe for concurrent use.
package capture
