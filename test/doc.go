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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failed test with t.Errorf() and allow the
// test to continue. The Demand*() functions report with t.Fatalf() and should
// be used when the remainder of the test depends on the value being correct.
//
// ExpectSuccess() and ExpectFailure() test for success under generic
// conditions. A bool is successful if it is true. An error is successful if it
// is nil. Note that the nil type is considered a success, because of how errors
// usually work, and will cause ExpectFailure() to fail.
//
// The CompareWriter, CappedWriter and RingWriter types implement io.Writer and
// should be used to capture output.
package test
