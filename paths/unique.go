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

package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Format of returned string is:
//
//	prepend_source_YYYYMMDD_HHMMSS
//
// Where source is the base name of the source stream with any extension
// removed. If there is no source name the returned string will be of the
// format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, source string) string {
	return uniqueFilename(prepend, source, time.Now())
}

func uniqueFilename(prepend string, source string, n time.Time) string {
	timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d", n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())

	s := strings.TrimSpace(source)
	if s != "" {
		s = filepath.Base(s)
		s = strings.TrimSuffix(s, filepath.Ext(s))
	}

	if s != "" && s != "." {
		return fmt.Sprintf("%s_%s_%s", prepend, s, timestamp)
	}
	return fmt.Sprintf("%s_%s", prepend, timestamp)
}
