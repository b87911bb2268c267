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

// Package prefs holds typed preference values and a Disk type that saves and
// loads them. A preference value is declared as a field of type Bool, Int,
// Float or String and added to a Disk under a key:
//
//	var gamma prefs.Float
//	dsk, _ := prefs.NewDisk(pth)
//	dsk.Add("display.gamma", &gamma)
//	dsk.Load()
//
// Hooks can be attached to a value. SetHookPre() is called before the value
// changes and can veto the change by returning an error. SetHookPost() is
// called after the value changes and is the usual way for the owner of the
// preference to react to a change.
//
// Values from the command line take priority over values on disk. See
// PushCommandLineStack() for the format.
package prefs
