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

// Package version reports the version of the program as set by the build
// process, falling back to the VCS information recorded by the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the program.
const ApplicationName = "Gopher264"

// number is set by the linker when building a release. for example:
//
//	go build -ldflags "-X github.com/jetsetilly/gopher264/version.number=v0.1.0"
var number string

// Info describes the build of the program.
type Info struct {
	// the release number. "unreleased" if the program was built from a VCS
	// checkout without a release number and "local" if there is no
	// information at all
	Version string

	// the VCS revision. suffixed with "+dirty" if the source had been
	// modified but not committed
	Revision string

	// the version of Go used to build the program
	GoVersion string
}

// Release returns true if the program was built with a release number.
func (inf Info) Release() bool {
	return number != "" && inf.Version == number
}

func (inf Info) String() string {
	if inf.Release() {
		return fmt.Sprintf("%s %s", ApplicationName, inf.Version)
	}
	return fmt.Sprintf("%s %s (%s) %s", ApplicationName, inf.Version, inf.Revision, inf.GoVersion)
}

// Version returns information about the build of the program.
func Version() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fromBuildInfo(nil)
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	inf := Info{
		Version:   "local",
		Revision:  "no revision information",
		GoVersion: "unknown",
	}

	var vcs bool
	if info != nil {
		inf.GoVersion = info.GoVersion

		var modified bool
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				inf.Revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
		if modified {
			inf.Revision = fmt.Sprintf("%s+dirty", inf.Revision)
		}
	}

	if number != "" {
		inf.Version = number
	} else if vcs {
		inf.Version = "unreleased"
	}

	return inf
}
