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

// Package ring implements a fixed capacity buffer of 16bit audio samples.
// When the buffer is full new samples are refused and counted as dropped.
// Samples already in the buffer are never overwritten.
package ring

import (
	"github.com/jetsetilly/gopher264/curated"
)

// Ring is a circular buffer of audio samples.
type Ring struct {
	buf   []int16
	read  int
	write int
	count int

	dropped uint64
}

// NewRing is the preferred method of initialisation for the Ring type.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, curated.Errorf("ring: invalid capacity (%d)", capacity)
	}
	return &Ring{
		buf: make([]int16, capacity),
	}, nil
}

// Write a single sample to the buffer. Returns false if the buffer is full and
// the sample has been dropped.
func (r *Ring) Write(s int16) bool {
	if r.count >= len(r.buf) {
		r.dropped++
		return false
	}
	r.buf[r.write] = s
	r.write++
	if r.write >= len(r.buf) {
		r.write = 0
	}
	r.count++
	return true
}

// Read samples into dst. The number of samples read is returned and will be
// less than len(dst) if there are not enough samples in the buffer.
func (r *Ring) Read(dst []int16) int {
	n := min(len(dst), r.count)

	// at most two copies are required
	c := copy(dst[:n], r.buf[r.read:])
	if c < n {
		copy(dst[c:n], r.buf)
	}

	r.read = (r.read + n) % len(r.buf)
	r.count -= n
	return n
}

// Len returns the number of samples in the buffer.
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the capacity of the buffer.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Dropped returns the number of samples that have been refused because the
// buffer was full.
func (r *Ring) Dropped() uint64 {
	return r.dropped
}

// Reset empties the buffer. The dropped count is not reset.
func (r *Ring) Reset() {
	r.read = 0
	r.write = 0
	r.count = 0
}
