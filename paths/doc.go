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

// Package paths contains functions to prepare paths to gopher264 resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the following will return the
// path to the preferences file:
//
//	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// For development builds the config directory is ".gopher264" in the current
// working directory. For release builds, built with the "release" tag, the
// directory is "gopher264" in the user's config directory as returned by
// os.UserConfigDir(). In both cases the directory is created if it does not
// exist.
//
// The UniqueFilename() function creates a timestamped filename that is used
// as the default output name for capture files.
package paths
