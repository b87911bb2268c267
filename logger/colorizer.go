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

package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// line is rendered in bold and a line mentioning an error is rendered in red.
type Colorizer struct {
	out   io.Writer
	tag   lipgloss.Style
	error lipgloss.Style
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{
		out:   out,
		tag:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		error: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(1)),
	}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		tag, detail, ok := strings.Cut(l, ": ")
		if ok {
			if strings.Contains(detail, "error") {
				detail = c.error.Render(detail)
			}
			l = c.tag.Render(tag) + ": " + detail
		}

		m, err := io.WriteString(c.out, l+"\n")
		n += m
		if err != nil {
			return n, err
		}
	}

	// report the length of the original text to satisfy callers that check
	// for short writes
	return len(p), nil
}
