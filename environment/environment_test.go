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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/gopher264/environment"
	"github.com/jetsetilly/gopher264/logger"
	"github.com/jetsetilly/gopher264/test"
)

func TestPermission(t *testing.T) {
	var perm logger.Permission

	env := environment.NewEnvironment(environment.MainSession)
	perm = env
	test.ExpectSuccess(t, perm.AllowLogging())
	test.ExpectSuccess(t, env.IsMainSession())

	env = environment.NewEnvironment("testcard")
	perm = env
	test.ExpectFailure(t, perm.AllowLogging())
	test.ExpectSuccess(t, env.IsSession("testcard"))

	env.Verbose = true
	test.ExpectSuccess(t, perm.AllowLogging())

	var nilEnv *environment.Environment
	test.ExpectSuccess(t, nilEnv.AllowLogging())
}
