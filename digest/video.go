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
	"fmt"

	"github.com/jetsetilly/gopher264/resample"
)

// Video is a chained digest of the planes of every frame.
type Video struct {
	digest [sha1.Size]byte
	data   []byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of frames seen since the last reset.
func (dig *Video) Frames() int {
	return dig.frames
}

// Frame adds the planes of a frame to the digest.
func (dig *Video) Frame(planes resample.Planes) {
	l := len(dig.digest) + planes.Size()
	if len(dig.data) != l {
		dig.data = make([]byte, l)
	}

	// the previous digest is at the head of the data
	n := copy(dig.data, dig.digest[:])
	n += copy(dig.data[n:], planes.Y)
	n += copy(dig.data[n:], planes.V)
	copy(dig.data[n:], planes.U)

	dig.digest = sha1.Sum(dig.data)
	dig.frames++
}
