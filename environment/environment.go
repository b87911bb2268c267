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

// Package environment provides the context for a capture session. A program
// can run more than one session at once, for example when a test card is
// rendered alongside the main encode, and the environment is how a session
// identifies itself to shared services such as the logger.
package environment

// Label is used to name the environment.
type Label string

// MainSession is the label used by the primary capture session.
const MainSession = Label("")

// Environment is used to provide context for a capture session.
type Environment struct {
	Label Label

	// log entries from non-main sessions are suppressed unless Verbose is
	// set
	Verbose bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(label Label) *Environment {
	return &Environment{
		Label: label,
	}
}

// IsMainSession returns true if the environment is intended for the main
// capture session in the program.
func (env *Environment) IsMainSession() bool {
	return env.Label == MainSession
}

// IsSession checks the session label and returns true if it matches.
func (env *Environment) IsSession(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	if env == nil {
		return true
	}
	return env.Verbose || env.IsMainSession()
}
