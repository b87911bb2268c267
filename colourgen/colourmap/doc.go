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

// Package colourmap precomputes the output pixel for every combination of
// colour band and colour index. A colour band models one condition of the
// composite signal: the phase error of the line, the PAL V-switch, the
// presence of colour burst, blanking and so on. Bands are selected by the
// combination of sample flags and line flags, see signal.Selector().
//
// The Colormap is built from a colourgen.Parameters value with Build() and is
// read-only after that. It should be rebuilt whenever the parameters change.
// Building is pure computation and cannot fail.
//
// The ConvertFourPixels() function is the decoding primitive. It converts a
// single raw sample into four output pixels.
package colourmap
