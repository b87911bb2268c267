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
	"encoding/binary"
	"io"
	"os"

	"github.com/jetsetilly/gopher264/curated"
	"github.com/jetsetilly/gopher264/resample"
)

// Sentinal error patterns. Any error returned by the Writer has caused the
// file to be closed.
const (
	ConfigError = "avi: config: %v"
	OpenError   = "avi: open: %v"
	WriteError  = "avi: write: %v"
	SeekError   = "avi: seek: %v"
	HeaderError = "avi: header: %v"
	CloseError  = "avi: close: %v"
	FrameError  = "avi: frame: %v"
)

// HeaderInterval is the number of frames between each rewrite of the
// header.
const HeaderInterval = 16

// File is the destination of a Writer. Open() uses an *os.File.
type File interface {
	io.WriteSeeker
	io.Closer
}

// Writer appends frames to an AVI file.
type Writer struct {
	conf Config

	f        File
	filename string
	frames   int

	// a complete frame including both chunk headers
	buf []byte
}

// NewWriter is the preferred method of initialisation for the Writer type.
func NewWriter(conf Config) (*Writer, error) {
	if conf.Width <= 0 || conf.Height <= 0 || conf.Width&1 == 1 || conf.Height&1 == 1 {
		return nil, curated.Errorf(ConfigError, "width and height must be positive and even")
	}
	if conf.FrameRate <= 0 || conf.SampleRate <= 0 {
		return nil, curated.Errorf(ConfigError, "frame rate and sample rate must be positive")
	}
	if conf.SampleRate%conf.FrameRate != 0 {
		return nil, curated.Errorf(ConfigError, "sample rate must be a multiple of frame rate")
	}

	w := &Writer{
		conf: conf,
		buf:  make([]byte, conf.frameSize()),
	}

	// chunk headers never change
	copy(w.buf, "00dc")
	binary.LittleEndian.PutUint32(w.buf[4:], uint32(conf.VideoSize()))
	a := chunkHeaderSize + conf.VideoSize()
	copy(w.buf[a:], "01wb")
	binary.LittleEndian.PutUint32(w.buf[a+4:], uint32(conf.AudioSize()))

	return w, nil
}

// Config returns the configuration of the Writer.
func (w *Writer) Config() Config {
	return w.conf
}

// IsOpen returns true if a file is open.
func (w *Writer) IsOpen() bool {
	return w.f != nil
}

// Filename returns the name of the open file. Returns the empty string if no
// file is open.
func (w *Writer) Filename() string {
	return w.filename
}

// Frames returns the number of frames written to the open file.
func (w *Writer) Frames() int {
	return w.frames
}

// Open creates the named file and writes the initial header. Any file already
// open is closed first. An empty filename closes any open file and does
// nothing else.
func (w *Writer) Open(filename string) error {
	if err := w.Close(); err != nil {
		return err
	}

	if filename == "" {
		return nil
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(OpenError, err)
	}

	return w.Attach(f, filename)
}

// Attach starts writing to a File that is already open and empty. The
// initial header is written at the start of the File. Any file already
// open is closed first. The name is returned by Filename().
//
// The Writer closes the File when Close() is called or after an error.
func (w *Writer) Attach(f File, name string) error {
	if err := w.Close(); err != nil {
		_ = f.Close()
		return err
	}

	w.f = f
	w.filename = name

	if err := w.writeHeader(); err != nil {
		w.abandon()
		return err
	}

	return nil
}

// Close rewrites the header with the final frame count and closes the file.
// Does nothing if no file is open.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}

	err := w.writeHeader()

	if cerr := w.f.Close(); cerr != nil && err == nil {
		err = curated.Errorf(CloseError, cerr)
	}

	w.f = nil
	w.filename = ""
	w.frames = 0

	return err
}

// abandon the file after an error. the error from closing the file is
// ignored because the original error is more important.
func (w *Writer) abandon() {
	if w.f != nil {
		_ = w.f.Close()
	}
	w.f = nil
	w.filename = ""
	w.frames = 0
}

// WriteFrame adds one frame to the file. The planes must match the size in
// the Config and there must be exactly Config.SamplesPerFrame() audio
// samples.
//
// Does nothing if no file is open.
func (w *Writer) WriteFrame(planes resample.Planes, audio []int16) error {
	if w.f == nil {
		return nil
	}

	if planes.Width != w.conf.Width || planes.Height != w.conf.Height {
		return curated.Errorf(FrameError, "wrong frame dimensions")
	}
	if len(audio) != w.conf.SamplesPerFrame() {
		return curated.Errorf(FrameError, "wrong number of audio samples")
	}

	// YV12 stores the V plane before the U plane
	b := w.buf[chunkHeaderSize:]
	b = b[copy(b, planes.Y):]
	b = b[copy(b, planes.V):]
	b = b[copy(b, planes.U):]

	b = b[chunkHeaderSize:]
	for i, s := range audio {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}

	if _, err := w.f.Write(w.buf); err != nil {
		w.abandon()
		return curated.Errorf(WriteError, err)
	}

	w.frames++
	if w.frames%HeaderInterval == 0 {
		if err := w.writeHeader(); err != nil {
			w.abandon()
			return err
		}
	}

	return nil
}

// writeHeader seeks to the start of the file, writes the header and seeks
// back to the end of the file.
func (w *Writer) writeHeader() error {
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf(SeekError, err)
	}
	if _, err := w.f.Write(w.conf.header(w.frames)); err != nil {
		return curated.Errorf(HeaderError, err)
	}
	if _, err := w.f.Seek(0, io.SeekEnd); err != nil {
		return curated.Errorf(SeekError, err)
	}
	return nil
}
