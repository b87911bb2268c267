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

// Package logger is the central log for the capture engine. Entries are
// tagged, usually with the name of the package making the entry, and repeated
// entries are folded into a single line.
//
// Logging requests carry a Permission. The Allow value will always permit an
// entry to be made. The environment package provides an implementation that
// allows a capture session to be silenced, which is useful during testing.
//
// The central log is bounded. Only the most recent entries are kept.
package logger
