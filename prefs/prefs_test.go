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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher264/prefs"
	"github.com/jetsetilly/gopher264/test"
)

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestInt(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
}

func TestFloatRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var gamma prefs.Float
	test.ExpectSuccess(t, dsk.Add("display.gamma", &gamma))
	test.ExpectSuccess(t, gamma.Set(1.25))
	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "display.gamma :: 1.25\n")

	// a second disk instance sharing the file
	other, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var loaded prefs.Float
	var unrelated prefs.String
	test.ExpectSuccess(t, other.Add("display.gamma", &loaded))
	test.ExpectSuccess(t, other.Add("capture.name", &unrelated))
	test.DemandSuccess(t, other.Load())
	test.ExpectEquality(t, loaded.Get().(float64), 1.25)

	// saving the second disk preserves everything
	test.ExpectSuccess(t, unrelated.Set("demo"))
	test.DemandSuccess(t, other.Save())
	cmpTmpFile(t, fn, "capture.name :: demo\ndisplay.gamma :: 1.25\n")
}

func TestHooks(t *testing.T) {
	var v prefs.Float
	var calls int

	v.SetHookPre(func(value prefs.Value) error {
		if value.(float64) < 0 {
			return fmt.Errorf("negative value")
		}
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		calls++
		return nil
	})

	test.ExpectSuccess(t, v.Set(0.5))
	test.ExpectFailure(t, v.Set(-0.5))
	test.ExpectEquality(t, v.Get().(float64), 0.5)
	test.ExpectEquality(t, calls, 1)
}

func TestCommandLine(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var saturation prefs.Float
	test.ExpectSuccess(t, dsk.Add("display.saturation", &saturation))

	prefs.PushCommandLineStack("display.saturation::0.5; display.unknown::1")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)

	// no file exists but the command line value is still applied
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, saturation.Get().(float64), 0.5)

	// only the unused value remains
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "display.unknown::1")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}

func TestInvalidFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not a prefs file\n"), 0600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, dsk.Load())
}
