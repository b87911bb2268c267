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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given to the Modes type with NewArgs() and then parsed with
// Parse(). Flags for the mode being parsed are added before each call to
// Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.NewMode()
//	md.AddSubModes("ENCODE", "TESTCARD", "INSPECT")
//	p, err := md.Parse()
//
// The first sub-mode is the default. After Parse() the Mode() function returns
// the selected mode and the caller can start a new mode with NewMode(), add
// the flags for that mode and call Parse() again. The arguments consumed by
// earlier calls are not seen again:
//
//	md.NewMode()
//	wav := md.AddBool("wav", false, "write audio to wav file")
//	p, err = md.Parse()
//
// Sub-mode comparisons are case insensitive.
//
// A Parse() result of ParseHelp means the help message has been written to
// the Output field of the Modes type and the program should stop. Output can
// be nil, in which case help messages are discarded.
package modalflag
