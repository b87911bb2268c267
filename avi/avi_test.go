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

package avi_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher264/avi"
	"github.com/jetsetilly/gopher264/curated"
	"github.com/jetsetilly/gopher264/resample"
	"github.com/jetsetilly/gopher264/test"
)

func newPlanes(conf avi.Config, fill uint8) resample.Planes {
	p := resample.Planes{
		Width:  conf.Width,
		Height: conf.Height,
		Y:      make([]uint8, conf.Width*conf.Height),
		U:      make([]uint8, conf.Width*conf.Height/4),
		V:      make([]uint8, conf.Width*conf.Height/4),
	}
	for i := range p.Y {
		p.Y[i] = fill
	}
	for i := range p.U {
		p.U[i] = 0x40
		p.V[i] = 0xc0
	}
	return p
}

func newAudio(conf avi.Config) []int16 {
	a := make([]int16, conf.SamplesPerFrame())
	for i := range a {
		a[i] = int16(i - len(a)/2)
	}
	return a
}

func TestConfig(t *testing.T) {
	conf := avi.DefaultConfig()
	test.ExpectEquality(t, conf.VideoSize(), 165888)
	test.ExpectEquality(t, conf.SamplesPerFrame(), 1920)
	test.ExpectEquality(t, conf.AudioSize(), 3840)

	_, err := avi.NewWriter(conf)
	test.ExpectSuccess(t, err)

	bad := conf
	bad.Width = 383
	_, err = avi.NewWriter(bad)
	test.ExpectEquality(t, curated.Is(err, avi.ConfigError), true)

	bad = conf
	bad.SampleRate = 44101
	_, err = avi.NewWriter(bad)
	test.ExpectEquality(t, curated.Is(err, avi.ConfigError), true)

	bad = conf
	bad.FrameRate = 0
	_, err = avi.NewWriter(bad)
	test.ExpectEquality(t, curated.Is(err, avi.ConfigError), true)
}

func TestEmptyFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "empty.avi")

	w, err := avi.NewWriter(avi.DefaultConfig())
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Open(fn))
	test.ExpectEquality(t, w.IsOpen(), true)
	test.ExpectEquality(t, w.Filename(), fn)

	st, err := os.Stat(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, st.Size(), int64(0x146))

	test.DemandSuccess(t, w.Close())
	test.ExpectEquality(t, w.IsOpen(), false)

	inf, err := avi.Inspect(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, inf.Frames, 0)
	test.ExpectEquality(t, inf.HeaderFrames, 0)
	test.ExpectEquality(t, inf.Width, 384)
	test.ExpectEquality(t, inf.Height, 288)
	test.ExpectEquality(t, inf.FrameRate, 25)
	test.ExpectEquality(t, inf.Codec, "YV12")
	test.ExpectEquality(t, inf.SampleRate, 48000)
	test.ExpectEquality(t, inf.Channels, 1)
	test.ExpectEquality(t, inf.BitDepth, 16)
	test.ExpectEquality(t, inf.Truncated, false)
}

func TestClosedFrameCount(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "closed.avi")
	conf := avi.DefaultConfig()

	w, err := avi.NewWriter(conf)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Open(fn))

	const n = 21
	for i := range n {
		test.DemandSuccess(t, w.WriteFrame(newPlanes(conf, uint8(i)), newAudio(conf)))
	}
	test.ExpectEquality(t, w.Frames(), n)
	test.DemandSuccess(t, w.Close())
	test.ExpectEquality(t, w.Frames(), 0)

	inf, err := avi.Inspect(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, inf.HeaderFrames, n)
	test.ExpectEquality(t, inf.Frames, n)

	// check file size and the content of the last frame
	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	frameSize := conf.VideoSize() + conf.AudioSize() + 16
	test.DemandEquality(t, len(b), 0x146+frameSize*n)

	last := b[0x146+frameSize*(n-1):]
	test.ExpectEquality(t, string(last[:4]), "00dc")
	test.ExpectEquality(t, binary.LittleEndian.Uint32(last[4:]), uint32(conf.VideoSize()))
	test.ExpectEquality(t, last[8], uint8(n-1))

	// V plane precedes U plane
	test.ExpectEquality(t, last[8+conf.Width*conf.Height], uint8(0xc0))
	test.ExpectEquality(t, last[8+conf.Width*conf.Height*5/4], uint8(0x40))

	aud := last[8+conf.VideoSize():]
	test.ExpectEquality(t, string(aud[:4]), "01wb")
	test.ExpectEquality(t, binary.LittleEndian.Uint32(aud[4:]), uint32(conf.AudioSize()))
	test.ExpectEquality(t, int16(binary.LittleEndian.Uint16(aud[8:])), int16(-960))
}

func TestUnclosedFrameCount(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "unclosed.avi")
	conf := avi.DefaultConfig()

	w, err := avi.NewWriter(conf)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Open(fn))
	defer w.Close()

	const n = 37
	for i := range n {
		test.DemandSuccess(t, w.WriteFrame(newPlanes(conf, uint8(i)), newAudio(conf)))
	}

	// header is stale but the body is complete
	inf, err := avi.Inspect(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, inf.HeaderFrames, 32)
	test.ExpectEquality(t, inf.Frames, n)
	test.ExpectEquality(t, inf.Truncated, false)
}

func TestTruncatedFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "truncated.avi")
	conf := avi.DefaultConfig()

	w, err := avi.NewWriter(conf)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Open(fn))
	for range 3 {
		test.DemandSuccess(t, w.WriteFrame(newPlanes(conf, 0), newAudio(conf)))
	}
	test.DemandSuccess(t, w.Close())

	// cut the file part way through the video chunk of the last frame
	st, err := os.Stat(fn)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Truncate(fn, st.Size()-int64(conf.AudioSize())-1000))

	inf, err := avi.Inspect(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, inf.HeaderFrames, 3)
	test.ExpectEquality(t, inf.Frames, 2)
	test.ExpectEquality(t, inf.Truncated, true)
}

func TestFrameErrors(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "errors.avi")
	conf := avi.DefaultConfig()

	w, err := avi.NewWriter(conf)
	test.DemandSuccess(t, err)

	// writing with no open file does nothing
	test.ExpectSuccess(t, w.WriteFrame(newPlanes(conf, 0), newAudio(conf)))
	test.ExpectEquality(t, w.Frames(), 0)

	test.DemandSuccess(t, w.Open(fn))
	defer w.Close()

	err = w.WriteFrame(newPlanes(conf, 0), newAudio(conf)[1:])
	test.ExpectEquality(t, curated.Is(err, avi.FrameError), true)

	small := avi.Config{Width: 16, Height: 16, FrameRate: 25, SampleRate: 48000}
	err = w.WriteFrame(newPlanes(small, 0), newAudio(conf))
	test.ExpectEquality(t, curated.Is(err, avi.FrameError), true)

	// a rejected frame leaves the file open
	test.ExpectEquality(t, w.IsOpen(), true)
	test.ExpectEquality(t, w.Frames(), 0)
}

func TestOpenError(t *testing.T) {
	w, err := avi.NewWriter(avi.DefaultConfig())
	test.DemandSuccess(t, err)

	err = w.Open(filepath.Join(t.TempDir(), "missing", "file.avi"))
	test.ExpectEquality(t, curated.Is(err, avi.OpenError), true)
	test.ExpectEquality(t, w.IsOpen(), false)

	// an empty filename is not an error
	test.ExpectSuccess(t, w.Open(""))
	test.ExpectEquality(t, w.IsOpen(), false)
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	conf := avi.DefaultConfig()

	w, err := avi.NewWriter(conf)
	test.DemandSuccess(t, err)

	first := filepath.Join(dir, "first.avi")
	test.DemandSuccess(t, w.Open(first))
	for range 5 {
		test.DemandSuccess(t, w.WriteFrame(newPlanes(conf, 0), newAudio(conf)))
	}

	// opening a second file finalises the first
	second := filepath.Join(dir, "second.avi")
	test.DemandSuccess(t, w.Open(second))
	test.ExpectEquality(t, w.Frames(), 0)
	test.DemandSuccess(t, w.Close())

	inf, err := avi.Inspect(first)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, inf.HeaderFrames, 5)
	test.ExpectEquality(t, inf.Frames, 5)
}

func TestInspectNotAVI(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "not.avi")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("this is not a riff file"), 0o644))
	_, err := avi.Inspect(fn)
	test.ExpectEquality(t, curated.Is(err, avi.InspectError), true)

	_, err = avi.Inspect(filepath.Join(t.TempDir(), "missing.avi"))
	test.ExpectEquality(t, curated.Is(err, avi.InspectError), true)
}
