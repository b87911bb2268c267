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

// Package keypress watches a terminal for a key press without waiting for the
// return key. Live captures use it to stop cleanly.
//
// If the input is not a terminal the channel returned by Listen never
// receives.
//
// Calling the restore function stops the watch. On Windows the pending read of
// the console remains blocked until a key is pressed.
package keypress
