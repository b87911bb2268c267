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

package convert

import (
	"math"

	"github.com/jetsetilly/gopher264/curated"
)

// the cutoff of the anti-aliasing filter as a fraction of the lower of the
// input and output rate
const antiAliasCutoff = 0.45

// number of cascaded anti-aliasing filters
const antiAliasStages = 3

// Butterworth Q
const butterworthQ = 0.7071

// Settings for the filters of the converter.
type Settings struct {
	// corner frequencies of the two DC blocking filters. zero disables the
	// filter
	DCBlock1 float64
	DCBlock2 float64

	// scale applied to the output
	Amplitude float64

	// equaliser parameters. see the Equaliser mode constants
	EqualiserMode      int
	EqualiserFrequency float64
	EqualiserLevel     float64
	EqualiserQ         float64
}

// DefaultSettings returns the settings used when no preferences are given.
func DefaultSettings() Settings {
	return Settings{
		DCBlock1:           10.0,
		DCBlock2:           10.0,
		Amplitude:          0.7071,
		EqualiserMode:      EqualiserOff,
		EqualiserFrequency: 1000.0,
		EqualiserLevel:     1.0,
		EqualiserQ:         butterworthQ,
	}
}

// Converter changes the sample rate of a mono audio stream.
type Converter struct {
	inRate  float64
	outRate float64

	settings Settings

	antiAlias [antiAliasStages]biquad
	eq        biquad
	dc1       dcBlock
	dc2       dcBlock

	// step is the distance between output samples measured in input samples
	step float64

	// position of the next output sample between prev and curr
	pos  float64
	prev float64
	curr float64

	output func(left int16, right int16)
}

// NewConverter is the preferred method of initialisation for the Converter
// type. The output function is called for every output sample.
func NewConverter(inRate float64, outRate float64, settings Settings, output func(left int16, right int16)) (*Converter, error) {
	if outRate <= 0.0 {
		return nil, curated.Errorf("convert: invalid output rate (%v)", outRate)
	}
	if output == nil {
		return nil, curated.Errorf("convert: no output function")
	}

	c := &Converter{
		outRate: outRate,
		output:  output,
	}

	err := c.SetInputRate(inRate)
	if err != nil {
		return nil, err
	}
	c.SetSettings(settings)

	return c, nil
}

// InputRate returns the current input rate.
func (c *Converter) InputRate() float64 {
	return c.inRate
}

// OutputRate returns the output rate.
func (c *Converter) OutputRate() float64 {
	return c.outRate
}

// SetInputRate changes the input rate. The state of the filters and the
// position of the resampler are retained.
func (c *Converter) SetInputRate(inRate float64) error {
	if inRate <= 0.0 || math.IsInf(inRate, 0) || math.IsNaN(inRate) {
		return curated.Errorf("convert: invalid input rate (%v)", inRate)
	}
	c.inRate = inRate
	c.step = inRate / c.outRate

	cutoff := antiAliasCutoff * math.Min(c.inRate, c.outRate)
	for i := range c.antiAlias {
		c.antiAlias[i].lowPass(cutoff, c.inRate, butterworthQ)
	}
	return nil
}

// SetSettings changes the filter settings. Filter state is retained.
func (c *Converter) SetSettings(settings Settings) {
	c.settings = settings
	c.dc1.setFrequency(settings.DCBlock1, c.outRate)
	c.dc2.setFrequency(settings.DCBlock2, c.outRate)
	c.eq.equaliser(settings.EqualiserMode, settings.EqualiserFrequency,
		settings.EqualiserLevel, settings.EqualiserQ, c.outRate)
}

// Settings returns the current filter settings.
func (c *Converter) Settings() Settings {
	return c.settings
}

// Send a single input sample to the converter. Zero or more output samples
// will be passed to the output function.
func (c *Converter) Send(sample int16) {
	x := float64(sample)
	for i := range c.antiAlias {
		x = c.antiAlias[i].process(x)
	}

	c.prev = c.curr
	c.curr = x

	for c.pos < 1.0 {
		y := c.prev + (c.curr-c.prev)*c.pos
		c.emit(y)
		c.pos += c.step
	}
	c.pos -= 1.0
}

func (c *Converter) emit(y float64) {
	y = c.eq.process(y)
	y = c.dc1.process(y)
	y = c.dc2.process(y)
	y *= c.settings.Amplitude

	var s int16
	switch {
	case y >= math.MaxInt16:
		s = math.MaxInt16
	case y <= math.MinInt16:
		s = math.MinInt16
	default:
		s = int16(math.Round(y))
	}

	c.output(s, s)
}
