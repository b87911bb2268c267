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

package capture

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Stats summarise a capture session.
type Stats struct {
	// frames produced by the resampler, whether or not a file was open
	FramesOutput int

	// frames written to any file during the session
	FramesWritten int

	// number of files opened during the session
	FilesWritten int

	Fields    uint64
	VSyncs    uint64
	Lines     uint64
	Resampled uint64

	AudioDropped uint64

	ClockFrequency int
	NTSC           bool

	// frames per second of the output file
	FrameRate int
}

// Duration returns the length in seconds of the video written during the
// session.
func (s Stats) Duration() float64 {
	if s.FrameRate <= 0 {
		return 0
	}
	return float64(s.FramesWritten) / float64(s.FrameRate)
}

// Stats returns the current statistics for the session.
func (c *Capture) Stats() Stats {
	d := c.demod.Stats()
	return Stats{
		FramesOutput:   c.framesOutput,
		FramesWritten:  c.framesWritten,
		FilesWritten:   c.filesWritten,
		Fields:         d.Fields,
		VSyncs:         d.VSyncs,
		Lines:          d.Lines,
		Resampled:      d.Resampled,
		AudioDropped:   c.ring.Dropped(),
		ClockFrequency: c.clockFrequency,
		NTSC:           c.demod.IsNTSC(),
		FrameRate:      c.conf.FrameRate,
	}
}

var (
	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.ANSIColor(4)).
			Padding(0, 1)
	summaryLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6))
	summaryWarn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1))
)

// Summary writes a boxed summary of the session to the io.Writer.
func (c *Capture) Summary(w io.Writer) {
	s := c.Stats()

	mode := "PAL"
	if s.NTSC {
		mode = "NTSC"
	}

	secs := int(s.Duration())

	var resampled float64
	if s.Lines > 0 {
		resampled = float64(s.Resampled) * 100.0 / float64(s.Lines)
	}

	b := strings.Builder{}
	line := func(label string, format string, args ...any) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(summaryLabel.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf(format, args...))
	}

	line("mode", "%s @ %dHz", mode, s.ClockFrequency)
	line("frames", "%d (%d:%02d)", s.FramesWritten, secs/60, secs%60)
	line("fields", "%d (%d vsync)", s.Fields, s.VSyncs)
	line("lines", "%d (%.1f%% resampled)", s.Lines, resampled)

	if s.AudioDropped > 0 {
		line("audio", "%s", summaryWarn.Render(fmt.Sprintf("%d samples dropped", s.AudioDropped)))
	} else {
		line("audio", "no samples dropped")
	}

	fmt.Fprintln(w, summaryBox.Render(b.String()))
}
