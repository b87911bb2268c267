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

//go:build !windows

package keypress

import (
	"errors"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Listen puts the input terminal into cbreak mode and returns a channel that
// receives once when a key is pressed. The restore function returns the
// terminal to the mode it was in before Listen was called and must always be
// called.
//
// Nothing is read from the input after restore returns.
func Listen(input *os.File) (<-chan struct{}, func(), error) {
	if !term.IsTerminal(int(input.Fd())) {
		return make(chan struct{}), func() {}, nil
	}

	var canAttr unix.Termios
	if err := termios.Tcgetattr(input.Fd(), &canAttr); err != nil {
		return nil, nil, err
	}

	cbreakAttr := canAttr
	termios.Cfmakecbreak(&cbreakAttr)
	if err := termios.Tcsetattr(input.Fd(), termios.TCSANOW, &cbreakAttr); err != nil {
		return nil, nil, err
	}

	w := newWatcher(int(input.Fd()))

	restore := func() {
		w.close()
		_ = termios.Tcsetattr(input.Fd(), termios.TCSANOW, &canAttr)
	}

	return w.pressed, restore, nil
}

// how long in milliseconds the watcher waits for input before checking for a
// request to stop
const pollInterval = 100

// watcher reads a single byte from a file descriptor.
type watcher struct {
	fd      int
	pressed chan struct{}

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newWatcher(fd int) *watcher {
	w := &watcher{
		fd:      fd,
		pressed: make(chan struct{}),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *watcher) run() {
	defer close(w.stopped)

	fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}
	for {
		select {
		case <-w.stop:
			return
		default:
		}

		n, err := unix.Poll(fds, pollInterval)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return
		}
		if n == 0 {
			continue
		}

		if fds[0].Revents&unix.POLLIN == 0 {
			// hangup or error
			return
		}

		b := make([]byte, 1)
		if n, _ := unix.Read(w.fd, b); n > 0 {
			close(w.pressed)
		}
		return
	}
}

// close stops the watcher and waits for it to finish. It is safe to call more
// than once.
func (w *watcher) close() {
	w.once.Do(func() {
		close(w.stop)
	})
	<-w.stopped
}
