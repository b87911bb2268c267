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

package ring_test

import (
	"testing"

	"github.com/jetsetilly/gopher264/audio/ring"
	"github.com/jetsetilly/gopher264/test"
)

func TestInvalid(t *testing.T) {
	_, err := ring.NewRing(0)
	test.ExpectFailure(t, err)
}

func TestOverflow(t *testing.T) {
	r, err := ring.NewRing(16)
	test.DemandSuccess(t, err)

	for i := range 40 {
		ok := r.Write(int16(i))
		test.ExpectEquality(t, ok, i < 16, i)
		test.ExpectRange(t, r.Len(), 0, r.Cap(), i)
	}
	test.ExpectEquality(t, r.Len(), 16)
	test.ExpectEquality(t, r.Dropped(), uint64(24))

	// oldest data is retained
	dst := make([]int16, 4)
	test.ExpectEquality(t, r.Read(dst), 4)
	for i, s := range dst {
		test.ExpectEquality(t, s, int16(i))
	}
	test.ExpectEquality(t, r.Len(), 12)
}

func TestWrapAround(t *testing.T) {
	r, err := ring.NewRing(10)
	test.DemandSuccess(t, err)

	dst := make([]int16, 7)
	var next int16
	var expect int16

	for range 20 {
		for range 7 {
			r.Write(next)
			next++
		}
		n := r.Read(dst)
		test.ExpectEquality(t, n, 7)
		for _, s := range dst[:n] {
			test.ExpectEquality(t, s, expect)
			expect++
		}
	}
	test.ExpectEquality(t, r.Dropped(), uint64(0))
}

func TestShortRead(t *testing.T) {
	r, err := ring.NewRing(8)
	test.DemandSuccess(t, err)
	r.Write(1)
	r.Write(2)

	dst := make([]int16, 4)
	test.ExpectEquality(t, r.Read(dst), 2)
	test.ExpectEquality(t, r.Len(), 0)
	test.ExpectEquality(t, r.Read(dst), 0)

	r.Write(3)
	r.Reset()
	test.ExpectEquality(t, r.Len(), 0)
}
