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

// Package stream reads and writes raw sample stream files. A stream file
// records the output of the emulated video chip, one record per clock cycle,
// so that it can be encoded later or repeatedly with different settings.
//
// The file starts with the four byte magic "G264", a version byte, an NTSC
// flag byte and the clock frequency in Hz as a little endian uint32. The
// remainder of the file is a sequence of records. Each record is a sample,
// two or five bytes long as indicated by the first byte, followed by the
// audio level as a little endian int16.
package stream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/jetsetilly/gopher264/curated"
	"github.com/jetsetilly/gopher264/signal"
)

// Sentinal error patterns.
const (
	FormatError    = "stream: format: %v"
	TruncatedError = "stream: truncated record"
	WriteError     = "stream: write: %v"
	ReadError      = "stream: read: %v"
)

const (
	magic      = "G264"
	version    = 1
	headerSize = 10
)

// Header describes the stream.
type Header struct {
	NTSC           bool
	ClockFrequency int
}

// Writer writes a stream file.
type Writer struct {
	w   *bufio.Writer
	rec [7]byte
}

// NewWriter writes the header and returns a Writer ready for records. The
// Writer is buffered and Flush() must be called when all records have been
// written.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	sw := &Writer{
		w: bufio.NewWriter(w),
	}

	var b [headerSize]byte
	copy(b[:], magic)
	b[4] = version
	if h.NTSC {
		b[5] = 1
	}
	binary.LittleEndian.PutUint32(b[6:], uint32(h.ClockFrequency))

	if _, err := sw.w.Write(b[:]); err != nil {
		return nil, curated.Errorf(WriteError, err)
	}

	return sw, nil
}

// Write adds one record to the stream. A sample shorter than the length
// indicated by its first byte is padded with zeroes.
func (sw *Writer) Write(sample []byte, audio int16) error {
	if len(sample) == 0 {
		return curated.Errorf(WriteError, "empty sample")
	}

	n := signal.Flags(sample[0]).Len()
	clear(sw.rec[:n])
	copy(sw.rec[:n], sample)
	binary.LittleEndian.PutUint16(sw.rec[n:], uint16(audio))

	if _, err := sw.w.Write(sw.rec[:n+2]); err != nil {
		return curated.Errorf(WriteError, err)
	}
	return nil
}

// Flush writes any buffered records.
func (sw *Writer) Flush() error {
	if err := sw.w.Flush(); err != nil {
		return curated.Errorf(WriteError, err)
	}
	return nil
}

// Reader reads a stream file.
type Reader struct {
	r   *bufio.Reader
	hdr Header
	rec [7]byte
}

// NewReader reads the header and returns a Reader ready for records.
func NewReader(r io.Reader) (*Reader, error) {
	sr := &Reader{
		r: bufio.NewReader(r),
	}

	var b [headerSize]byte
	if _, err := io.ReadFull(sr.r, b[:]); err != nil {
		return nil, curated.Errorf(FormatError, "missing header")
	}
	if string(b[:4]) != magic {
		return nil, curated.Errorf(FormatError, "not a stream file")
	}
	if b[4] != version {
		return nil, curated.Errorf(FormatError, "unsupported version")
	}

	sr.hdr.NTSC = b[5] != 0
	sr.hdr.ClockFrequency = int(binary.LittleEndian.Uint32(b[6:]))

	return sr, nil
}

// Header returns the header of the stream.
func (sr *Reader) Header() Header {
	return sr.hdr
}

// Next returns the next record. The returned sample is overwritten by the
// next call to Next(). Returns io.EOF at the end of the stream.
func (sr *Reader) Next() ([]byte, int16, error) {
	c, err := sr.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, io.EOF
		}
		return nil, 0, curated.Errorf(ReadError, err)
	}

	n := signal.Flags(c).Len()
	sr.rec[0] = c
	if _, err := io.ReadFull(sr.r, sr.rec[1:n+2]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, curated.Errorf(TruncatedError)
		}
		return nil, 0, curated.Errorf(ReadError, err)
	}

	return sr.rec[:n], int16(binary.LittleEndian.Uint16(sr.rec[n:])), nil
}
