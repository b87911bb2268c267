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

package soundload

// Player plays a Sound at the clock rate of the emulated machine.
type Player struct {
	snd  *Sound
	loop bool

	// position in the sound measured in samples, and the distance moved
	// for every clock cycle
	pos  float64
	step float64
}

// NewPlayer is the preferred method of initialisation for the Player type.
// If loop is true then the sound will restart when it reaches the end.
func NewPlayer(snd *Sound, clockFrequency int, loop bool) *Player {
	p := &Player{
		snd:  snd,
		loop: loop,
	}
	if clockFrequency > 0 {
		p.step = float64(snd.SampleRate) / float64(clockFrequency)
	}
	return p
}

// Finished returns true if the end of the sound has been reached and the
// player is not looping.
func (p *Player) Finished() bool {
	return !p.loop && int(p.pos) >= len(p.snd.Data)
}

// Next returns the audio level for the next clock cycle. Successive samples
// of the sound are linearly interpolated. Returns zero once the sound has
// finished.
func (p *Player) Next() int16 {
	n := len(p.snd.Data)
	if n == 0 {
		return 0
	}

	i := int(p.pos)
	if i >= n {
		if !p.loop {
			return 0
		}
		p.pos -= float64(n)
		i = int(p.pos)
	}

	a := float64(p.snd.Data[i])
	b := a
	if i+1 < n {
		b = float64(p.snd.Data[i+1])
	} else if p.loop {
		b = float64(p.snd.Data[0])
	}

	frac := p.pos - float64(i)
	p.pos += p.step

	return int16(a + (b-a)*frac)
}
