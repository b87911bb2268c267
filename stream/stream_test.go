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

package stream_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/jetsetilly/gopher264/curated"
	"github.com/jetsetilly/gopher264/stream"
	"github.com/jetsetilly/gopher264/test"
	"github.com/jetsetilly/gopher264/testcard"
)

func TestCardStream(t *testing.T) {
	var b bytes.Buffer

	card := testcard.NewCard(true, testcard.Ramp, false)
	w, err := stream.NewWriter(&b, stream.Header{NTSC: true, ClockFrequency: card.ClockFrequency()})
	test.DemandSuccess(t, err)

	const cycles = 10000

	var samples [][]byte
	var audio []int16
	for range cycles {
		s, a := card.Next()
		samples = append(samples, append([]byte{}, s...))
		audio = append(audio, a)
		test.DemandSuccess(t, w.Write(s, a))
	}
	test.DemandSuccess(t, w.Flush())

	r, err := stream.NewReader(&b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Header().NTSC, true)
	test.ExpectEquality(t, r.Header().ClockFrequency, testcard.NTSCClock)

	for i := range cycles {
		s, a, err := r.Next()
		test.DemandSuccess(t, err)
		test.DemandEquality(t, string(s), string(samples[i]))
		test.DemandEquality(t, a, audio[i])
	}

	_, _, err = r.Next()
	test.ExpectEquality(t, err, io.EOF)
}

func TestShortSample(t *testing.T) {
	var b bytes.Buffer
	w, err := stream.NewWriter(&b, stream.Header{ClockFrequency: testcard.PALClock})
	test.DemandSuccess(t, err)

	// a five byte sample with only two bytes is padded
	test.DemandSuccess(t, w.Write([]byte{0x02, 0x71}, -1))
	test.ExpectFailure(t, w.Write(nil, 0))
	test.DemandSuccess(t, w.Flush())

	r, err := stream.NewReader(&b)
	test.DemandSuccess(t, err)
	s, a, err := r.Next()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(s), string([]byte{0x02, 0x71, 0, 0, 0}))
	test.ExpectEquality(t, a, int16(-1))
}

func TestTruncated(t *testing.T) {
	var b bytes.Buffer
	w, err := stream.NewWriter(&b, stream.Header{ClockFrequency: testcard.PALClock})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Write([]byte{0x00, 0x71}, 100))
	test.DemandSuccess(t, w.Write([]byte{0x00, 0x71}, 100))
	test.DemandSuccess(t, w.Flush())

	r, err := stream.NewReader(bytes.NewReader(b.Bytes()[:b.Len()-1]))
	test.DemandSuccess(t, err)
	_, _, err = r.Next()
	test.DemandSuccess(t, err)
	_, _, err = r.Next()
	test.ExpectEquality(t, curated.Is(err, stream.TruncatedError), true)
}

func TestBadHeader(t *testing.T) {
	_, err := stream.NewReader(bytes.NewReader([]byte("G26")))
	test.ExpectEquality(t, curated.Is(err, stream.FormatError), true)

	_, err = stream.NewReader(bytes.NewReader([]byte("RIFF\x01\x00\x00\x00\x00\x00")))
	test.ExpectEquality(t, curated.Is(err, stream.FormatError), true)

	_, err = stream.NewReader(bytes.NewReader([]byte("G264\x02\x00\x00\x00\x00\x00")))
	test.ExpectEquality(t, curated.Is(err, stream.FormatError), true)
}
