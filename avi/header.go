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
)

// Config describes the streams in the file.
type Config struct {
	Width      int
	Height     int
	FrameRate  int
	SampleRate int
}

// DefaultConfig is the configuration used by a capture session.
func DefaultConfig() Config {
	return Config{
		Width:      384,
		Height:     288,
		FrameRate:  25,
		SampleRate: 48000,
	}
}

// VideoSize is the number of bytes in one YV12 video frame.
func (conf Config) VideoSize() int {
	return conf.Width*conf.Height + 2*(conf.Width/2)*(conf.Height/2)
}

// SamplesPerFrame is the number of audio samples in the audio chunk of each
// frame.
func (conf Config) SamplesPerFrame() int {
	return conf.SampleRate / conf.FrameRate
}

// AudioSize is the number of bytes in the audio chunk of each frame.
func (conf Config) AudioSize() int {
	return conf.SamplesPerFrame() * 2
}

// frameSize is the number of bytes added to the file for each frame,
// including the chunk headers.
func (conf Config) frameSize() int {
	return conf.VideoSize() + conf.AudioSize() + 2*chunkHeaderSize
}

// the size of the header and of each part of it. the header is the same
// length for every configuration
const (
	chunkHeaderSize = 8
	headerSize      = 0x146
	hdrlSize        = 0x126
	videoStrlSize   = 0x74
	audioStrlSize   = 0x5e
	mainHeaderSize  = 0x38
	streamSize      = 0x38
	bitmapInfoSize  = 0x28
	waveFormatSize  = 0x12
)

// AVI main header flags
const (
	isInterleaved  = 0x00000100
	trustChunkType = 0x00000800
)

// the fourcc of the video codec
const codec = "YV12"

type headerWriter struct {
	b []byte
}

func (h *headerWriter) fourCC(s string) {
	h.b = append(h.b, s[:4]...)
}

func (h *headerWriter) u32(v int) {
	h.b = binary.LittleEndian.AppendUint32(h.b, uint32(v))
}

func (h *headerWriter) u16(v int) {
	h.b = binary.LittleEndian.AppendUint16(h.b, uint16(v))
}

func (h *headerWriter) chunk(id string, size int) {
	h.fourCC(id)
	h.u32(size)
}

func (h *headerWriter) list(typ string, size int) {
	h.chunk("LIST", size)
	h.fourCC(typ)
}

// header returns the header for a file containing the number of frames.
func (conf Config) header(frames int) []byte {
	frameSize := conf.frameSize()
	fileSize := headerSize + frameSize*frames

	h := headerWriter{b: make([]byte, 0, headerSize)}

	h.chunk("RIFF", fileSize-chunkHeaderSize)
	h.fourCC("AVI ")

	h.list("hdrl", hdrlSize)

	h.chunk("avih", mainHeaderSize)
	h.u32(1000000 / conf.FrameRate)
	h.u32(frameSize * conf.FrameRate)
	h.u32(1)
	h.u32(isInterleaved | trustChunkType)
	h.u32(frames)
	h.u32(0)
	h.u32(2)
	h.u32(frameSize)
	h.u32(conf.Width)
	h.u32(conf.Height)
	h.u32(0)
	h.u32(0)
	h.u32(0)
	h.u32(0)

	h.list("strl", videoStrlSize)

	h.chunk("strh", streamSize)
	h.fourCC("vids")
	h.fourCC(codec)
	h.u32(0)
	h.u16(0)
	h.u16(0)
	h.u32(0)
	h.u32(1)
	h.u32(conf.FrameRate)
	h.u32(0)
	h.u32(frames)
	h.u32(conf.VideoSize())
	h.u32(0)
	h.u32(0)
	h.u16(0)
	h.u16(0)
	h.u16(conf.Width)
	h.u16(conf.Height)

	h.chunk("strf", bitmapInfoSize)
	h.u32(bitmapInfoSize)
	h.u32(conf.Width)
	h.u32(conf.Height)
	h.u16(1)
	h.u16(12)
	h.fourCC(codec)
	h.u32(conf.VideoSize())
	h.u32(0)
	h.u32(0)
	h.u32(0)
	h.u32(0)

	h.list("strl", audioStrlSize)

	h.chunk("strh", streamSize)
	h.fourCC("auds")
	h.u32(1)
	h.u32(0)
	h.u16(0)
	h.u16(0)
	h.u32(0)
	h.u32(1)
	h.u32(conf.SampleRate)
	h.u32(0)
	h.u32(frames * conf.SamplesPerFrame())
	h.u32(conf.AudioSize())
	h.u32(0)
	h.u32(2)
	h.u16(0)
	h.u16(0)
	h.u16(0)
	h.u16(0)

	h.chunk("strf", waveFormatSize)
	h.u16(1)
	h.u16(1)
	h.u32(conf.SampleRate)
	h.u32(conf.SampleRate * 2)
	h.u16(2)
	h.u16(16)
	h.u16(0)

	h.list("movi", fileSize-headerSize+4)

	return h.b
}
