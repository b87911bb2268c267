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

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/gopher264/capture"
	"github.com/jetsetilly/gopher264/colourgen"
	"github.com/jetsetilly/gopher264/modalflag"
)

// swatch returns the colour of the palette entry as a hex string suitable for
// lipgloss. the entry is corrected with the default capture parameters so that
// the swatch matches the colour in an encoded file
func swatch(params colourgen.Parameters, index uint8, ntsc bool) lipgloss.Color {
	y, u, v := params.IndexToYUV.IndexToYUV(index, ntsc)
	y, u, v = params.Correct(y, u, v)
	r, g, b := colourgen.YUVToRGB(y, u, v)

	c := func(f float64) int {
		return int(math.Round(math.Max(0, math.Min(1, f)) * 255))
	}

	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c(r), c(g), c(b)))
}

// paletteTable renders the 128 entries of the colour index as rows of
// brightness and columns of colour. alt selects the entries with bit 7 set
func paletteTable(ntsc bool, alt bool) string {
	params := capture.DefaultParameters(colourgen.TED)

	var base uint8
	if alt {
		base = 0x80
	}

	label := lipgloss.NewStyle().Width(5).Foreground(lipgloss.ANSIColor(8))

	s := strings.Builder{}
	s.WriteString(label.Render(""))
	for c := 0; c < 16; c++ {
		s.WriteString(label.Render(fmt.Sprintf("%x", c)))
	}
	s.WriteString("\n")

	for b := 0; b < 8; b++ {
		s.WriteString(label.Render(fmt.Sprintf("%x0", b)))
		for c := 0; c < 16; c++ {
			idx := base | uint8(b<<4) | uint8(c)
			sw := lipgloss.NewStyle().Width(5).Background(swatch(params, idx, ntsc))
			s.WriteString(sw.Render(""))
		}
		s.WriteString("\n")
	}

	return s.String()
}

func palette(md *modalflag.Modes) error {
	md.NewMode()

	ntsc := md.AddBool("ntsc", false, "show the palette for an NTSC signal")
	alt := md.AddBool("alt", false, "show the entries with bit 7 of the colour index set")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.ANSIColor(6)).
		Padding(0, 1)

	fmt.Fprintln(md.Output, border.Render(strings.TrimRight(paletteTable(*ntsc, *alt), "\n")))

	return nil
}
