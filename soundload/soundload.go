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

// Package soundload decodes WAV and MP3 files into a mono 16bit stream. The
// decoded sound can be played back at the clock rate of the emulated machine
// with a Player, to provide the audio for a synthetic capture.
package soundload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gopher264/curated"
	"github.com/jetsetilly/gopher264/logger"
)

// LoadError is returned for any failure to load a sound file.
const LoadError = "soundload: %v"

const logTag = "soundload"

// Sound is decoded mono audio.
type Sound struct {
	SampleRate int
	Data       []int16
}

// Duration returns the length of the sound in seconds.
func (s *Sound) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(len(s.Data)) / float64(s.SampleRate)
}

// Load decodes the named file. The format is chosen by the file extension.
func Load(perm logger.Permission, filename string) (*Sound, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer f.Close()

	var s *Sound

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		logger.Logf(perm, logTag, "loading from wav file: %s", filename)
		s, err = DecodeWAV(f)
	case ".mp3":
		logger.Logf(perm, logTag, "loading from mp3 file: %s", filename)
		s, err = DecodeMP3(f)
	default:
		return nil, curated.Errorf(LoadError, "unsupported file type")
	}
	if err != nil {
		return nil, err
	}

	logger.Logf(perm, logTag, "sample rate: %dHz", s.SampleRate)
	logger.Logf(perm, logTag, "total time: %.02fs", s.Duration())

	return s, nil
}

// the number of samples decoded at once
const chunkSize = 4096

// DecodeWAV decodes WAV data. Channels are mixed to mono and samples are
// scaled to 16bit.
func DecodeWAV(r io.ReadSeeker) (*Sound, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return nil, curated.Errorf(LoadError, "wav: not a valid wav file")
	}

	chans := int(dec.NumChans)
	if chans == 0 {
		return nil, curated.Errorf(LoadError, "wav: no channels")
	}

	s := &Sound{
		SampleRate: int(dec.SampleRate),
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: chans,
			SampleRate:  s.SampleRate,
		},
		Data: make([]int, chunkSize*chans),
	}

	depth := int(dec.BitDepth)

	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, curated.Errorf(LoadError, err)
		}
		if n == 0 {
			break
		}

		for i := 0; i+chans <= n; i += chans {
			var acc int
			for c := range chans {
				acc += scale(buf.Data[i+c], depth)
			}
			s.Data = append(s.Data, int16(acc/chans))
		}
	}

	return s, nil
}

// scale a sample of any bit depth to 16bits. eight bit samples are unsigned
func scale(v int, depth int) int {
	switch {
	case depth == 8:
		return (v - 128) << 8
	case depth > 16:
		return v >> (depth - 16)
	case depth < 16:
		return v << (16 - depth)
	}
	return v
}

// DecodeMP3 decodes MP3 data. The decoder always produces 16bit stereo,
// which is mixed to mono.
func DecodeMP3(r io.Reader) (*Sound, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	s := &Sound{
		SampleRate: dec.SampleRate(),
	}

	chunk := make([]byte, chunkSize*4)
	for {
		n, err := dec.Read(chunk)

		// four bytes per stereo sample
		for i := 0; i+4 <= n; i += 4 {
			l := int(int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8))
			r := int(int16(uint16(chunk[i+2]) | uint16(chunk[i+3])<<8))
			s.Data = append(s.Data, int16((l+r)/2))
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, curated.Errorf(LoadError, err)
		}
	}

	return s, nil
}
