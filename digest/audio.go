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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// the number of samples collected before the digest is updated
const audioBufferLength = 4096

const audioBufferStart = sha1.Size

// Audio is a chained digest of audio samples.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{
		buffer:   make([]uint8, audioBufferStart+audioBufferLength*2),
		bufferCt: audioBufferStart,
	}
}

// Hash implements the Digest interface. Any pending samples are included in
// the hash.
func (dig *Audio) Hash() string {
	dig.flush()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	dig.bufferCt = audioBufferStart
}

// Samples adds audio samples to the digest.
func (dig *Audio) Samples(samples []int16) {
	for _, s := range samples {
		binary.LittleEndian.PutUint16(dig.buffer[dig.bufferCt:], uint16(s))
		dig.bufferCt += 2
		if dig.bufferCt >= len(dig.buffer) {
			dig.flush()
		}
	}
}

func (dig *Audio) flush() {
	if dig.bufferCt == audioBufferStart {
		return
	}
	copy(dig.buffer, dig.digest[:])
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	dig.bufferCt = audioBufferStart
}
