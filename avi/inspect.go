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

package avi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-audio/riff"
	"github.com/jetsetilly/gopher264/curated"
)

// InspectError is returned by Inspect() when the file cannot be read or is
// not an AVI file.
const InspectError = "avi: inspect: %v"

// Info is the result of inspecting an AVI file.
type Info struct {
	// frame count declared in the main header
	HeaderFrames int

	Width      int
	Height     int
	FrameRate  int
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int

	// number of complete video and audio chunk pairs in the movi list
	Frames int

	// the movi list ended part way through a chunk
	Truncated bool
}

func (inf Info) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%dx%d %s @ %dfps", inf.Width, inf.Height, inf.Codec, inf.FrameRate)
	fmt.Fprintf(&s, ", %dHz %dbit ", inf.SampleRate, inf.BitDepth)
	if inf.Channels == 1 {
		s.WriteString("mono")
	} else {
		fmt.Fprintf(&s, "%d channels", inf.Channels)
	}
	fmt.Fprintf(&s, ", %d frames", inf.Frames)
	if inf.HeaderFrames != inf.Frames {
		fmt.Fprintf(&s, " (header says %d)", inf.HeaderFrames)
	}
	if inf.Truncated {
		s.WriteString(", truncated")
	}
	return s.String()
}

// Duration returns the length of the video in seconds.
func (inf Info) Duration() float64 {
	if inf.FrameRate == 0 {
		return 0
	}
	return float64(inf.Frames) / float64(inf.FrameRate)
}

// the parts of the headers that are of interest. field layout follows the
// AVI structures
type mainHeader struct {
	MicroSecPerFrame    uint32
	MaxBytesPerSec      uint32
	PaddingGranularity  uint32
	Flags               uint32
	TotalFrames         uint32
	InitialFrames       uint32
	Streams             uint32
	SuggestedBufferSize uint32
	Width               uint32
	Height              uint32
}

type streamHeader struct {
	Type          [4]byte
	Handler       [4]byte
	Flags         uint32
	Priority      uint16
	Language      uint16
	InitialFrames uint32
	Scale         uint32
	Rate          uint32
}

type waveFormat struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

// Inspect reads the AVI file and counts the frames in it.
func Inspect(filename string) (Info, error) {
	var inf Info

	f, err := os.Open(filename)
	if err != nil {
		return inf, curated.Errorf(InspectError, err)
	}
	defer f.Close()

	p := riff.New(bufio.NewReader(f))
	if err := p.ParseHeaders(); err != nil {
		return inf, curated.Errorf(InspectError, err)
	}
	if string(p.Format[:]) != "AVI " {
		return inf, curated.Errorf(InspectError, "not an AVI file")
	}

	// the type of the most recent stream header. used to interpret the
	// stream format chunk that follows it
	var stream string

	// a video chunk has been read and is waiting for its audio chunk
	var video bool

	for {
		ch, err := p.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				inf.Truncated = true
				break
			}
			return inf, curated.Errorf(InspectError, err)
		}

		switch string(ch.ID[:]) {
		case "LIST":
			// the contents of a list are walked as though they were at the
			// top level
			var typ [4]byte
			if _, err := io.ReadFull(ch, typ[:]); err != nil {
				inf.Truncated = true
				return inf, nil
			}
			continue

		case "avih":
			var h mainHeader
			if err := ch.ReadLE(&h); err != nil {
				return inf, curated.Errorf(InspectError, err)
			}
			inf.HeaderFrames = int(h.TotalFrames)
			inf.Width = int(h.Width)
			inf.Height = int(h.Height)

		case "strh":
			var h streamHeader
			if err := ch.ReadLE(&h); err != nil {
				return inf, curated.Errorf(InspectError, err)
			}
			stream = string(h.Type[:])
			if stream == "vids" {
				inf.Codec = string(h.Handler[:])
				if h.Scale > 0 {
					inf.FrameRate = int(h.Rate / h.Scale)
				}
			}

		case "strf":
			if stream == "auds" {
				var h waveFormat
				if err := ch.ReadLE(&h); err != nil {
					return inf, curated.Errorf(InspectError, err)
				}
				inf.SampleRate = int(h.SamplesPerSec)
				inf.Channels = int(h.Channels)
				inf.BitDepth = int(h.BitsPerSample)
			}

		case "00dc", "01wb":
			if !skip(ch) {
				inf.Truncated = true
				return inf, nil
			}
			if ch.ID[2] == 'd' {
				video = true
			} else if video {
				inf.Frames++
				video = false
			}
			continue
		}

		if !skip(ch) {
			inf.Truncated = true
			return inf, nil
		}
	}

	return inf, nil
}

// skip the remainder of the chunk. returns false if the chunk is incomplete.
func skip(ch *riff.Chunk) bool {
	remaining := int64(ch.Size - ch.Pos)
	if remaining <= 0 {
		return true
	}
	n, _ := io.CopyN(io.Discard, ch, remaining)
	return n == remaining
}
