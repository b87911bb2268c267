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

// Package wavwriter allows writing of the decoded audio stream to disk as a
// WAV file. Note that audio data is buffered in memory in its entirety, and
// written to disk when EndMixing() is called. It is therefore intended as a
// diagnostic aid rather than a replacement for the audio track of the AVI
// file.
package wavwriter

import (
	"os"

	"github.com/jetsetilly/gopher264/curated"
	"github.com/jetsetilly/gopher264/logger"
	"github.com/youpy/go-wav"
)

// SampleRate of the audio written by the WavWriter.
const SampleRate = 48000

// WavWriter buffers 16bit mono audio and writes it to disk.
type WavWriter struct {
	filename string
	buffer   []wav.Sample
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, curated.Errorf("wavwriter: %v", "no filename")
	}

	aw := &WavWriter{
		filename: filename,
		buffer:   make([]wav.Sample, 0, SampleRate),
	}

	return aw, nil
}

// Filename returns the name of the file that will be written.
func (aw *WavWriter) Filename() string {
	return aw.filename
}

// Len returns the number of samples buffered so far.
func (aw *WavWriter) Len() int {
	return len(aw.buffer)
}

// SetAudio adds samples to the buffer.
func (aw *WavWriter) SetAudio(samples []int16) error {
	for _, s := range samples {
		w := wav.Sample{}
		w.Values[0] = int(s)
		aw.buffer = append(aw.buffer, w)
	}
	return nil
}

// EndMixing writes the buffered audio to disk.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 1, SampleRate, 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", len(aw.buffer), aw.filename)

	err = enc.WriteSamples(aw.buffer)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// Reset discards all buffered audio.
func (aw *WavWriter) Reset() {
	aw.buffer = aw.buffer[:0]
}
