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

// Package digest produces SHA-1 values for the video and audio of a capture
// session. The values are chained from frame to frame so the final hash
// depends on every frame in order. Two sessions with the same input and the
// same settings produce the same hashes.
//
// SHA-1 is fine for this application because this is not a cryptographic
// task.
package digest

// Digest implementations produce a hash of the data they have seen.
type Digest interface {
	Hash() string
	ResetDigest()
}
