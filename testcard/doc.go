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

// Package testcard generates a synthetic sample stream in the format
// described by the signal package. The stream has horizontal and vertical
// sync, colour burst and a choice of test patterns, and is used to exercise
// the decoding chain without an emulator.
//
// Every line is CyclesPerLine cycles long. The first sixteen cycles of each
// line are sync, blanking and burst and the remaining cycles are active
// video.
package testcard
