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

// Package avi writes captured video and audio to a RIFF AVI file. The file
// has two streams: an uncompressed YV12 video stream and a mono 16bit PCM
// audio stream. Each frame is written as one video chunk followed by one
// audio chunk.
//
// The header is written when the file is opened and rewritten with the
// current frame count every HeaderInterval frames and when the file is
// closed. A file that is not closed cleanly is still playable up to the last
// complete frame but the frame count in the header may be stale.
//
// There is no index chunk. Players that require one will generally rebuild
// it from the movi list.
//
// The Inspect() function reads back a file written by the Writer and reports
// on the header and the chunks in the movi list.
package avi
