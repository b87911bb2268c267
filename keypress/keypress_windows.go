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

//go:build windows

package keypress

import (
	"os"

	"golang.org/x/term"
)

// Listen puts the input console into raw mode and returns a channel that
// receives once when a key is pressed. The restore function returns the
// console to the mode it was in before Listen was called and must always be
// called.
//
// Console reads cannot be interrupted so a read that is waiting when restore
// is called stays blocked until the next key press. That key press is lost.
func Listen(input *os.File) (<-chan struct{}, func(), error) {
	pressed := make(chan struct{})

	fd := int(input.Fd())
	if !term.IsTerminal(fd) {
		return pressed, func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}

	go func() {
		b := make([]byte, 1)
		n, _ := input.Read(b)
		if n > 0 {
			close(pressed)
		}
	}()

	restore := func() {
		_ = term.Restore(fd, state)
	}

	return pressed, restore, nil
}
