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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a pattern and placeholder values in the same
// way as fmt.Errorf().
//
// The pattern is what distinguishes one curated error from another. The Is()
// function checks whether an error was created with a specific pattern:
//
//	e := curated.Errorf("avi: write: %v", err)
//	if curated.Is(e, "avi: write: %v") {
//		...
//	}
//
// The Has() function is similar but checks for the pattern anywhere in the
// chain of wrapped curated errors:
//
//	f := curated.Errorf("capture: %v", e)
//	curated.Has(f, "avi: write: %v") // true
//	curated.Is(f, "avi: write: %v")  // false
//
// Packages that raise distinguishable errors export their patterns as
// constants so that callers don't need to repeat the pattern text.
//
// The Error() function de-duplicates adjacent repeated parts of the message.
// This means a package can prefix errors with its name without worrying that
// the same prefix has already been added further down the call chain.
//
// Curated errors also work with the standard errors package. The first
// error value given to Errorf() is returned by Unwrap().
package curated
