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

// Package colourgen holds the colour correction parameters used when turning
// raw colour indexes into output pixels. The Parameters type is a plain value
// that is clamped whenever it is handed to a consumer. It carries the
// IndexToYUV implementation that maps a colour index to a base YUV triple.
//
// The Correct() function applies the colour correction to a YUV triple and
// returns the corrected RGB values. Conversion functions between YUV and RGB
// use the BT.470 coefficients throughout.
//
// TED is the IndexToYUV implementation for the colour index of the Plus/4
// video chip. Greyscale is the default when no implementation is given.
package colourgen
