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

// Package demodulator recovers a picture from the raw composite sample stream
// of the video chip. One sample is consumed on every clock cycle.
//
// Horizontal sync is tracked with a filtered estimate of the sync period that
// is corrected towards the measured phase of every sync pulse. A sync pulse
// of 26 or more cycles is a vertical sync and starts a new field. Samples in
// the active part of each line are collected and, when the line is complete,
// decoded through the colourmap into the frame buffer.
//
// Lines with a length that is not exactly nominal are resampled so that every
// decoded line fills the width of the frame. Malformed input never causes an
// error. At worst it results in a degraded picture.
//
// Audio samples are averaged over eight cycles and passed to the Receiver.
package demodulator
