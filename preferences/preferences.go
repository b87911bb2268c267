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

// Package preferences binds the colour parameters and audio converter
// settings of a capture session to values in the preferences file.
//
// Display keys are prefixed "display." and sound keys "sound.". Values given
// on the command line with prefs.PushCommandLineStack() override the values
// in the file when Load() is called.
package preferences

import (
	"github.com/jetsetilly/gopher264/audio/convert"
	"github.com/jetsetilly/gopher264/capture"
	"github.com/jetsetilly/gopher264/colourgen"
	"github.com/jetsetilly/gopher264/paths"
	"github.com/jetsetilly/gopher264/prefs"
)

// Channel is the preference values for one colour channel.
type Channel struct {
	Brightness prefs.Float
	Contrast   prefs.Float
	Gamma      prefs.Float
}

func (c *Channel) get() colourgen.Channel {
	return colourgen.Channel{
		Brightness: c.Brightness.Get().(float64),
		Contrast:   c.Contrast.Get().(float64),
		Gamma:      c.Gamma.Get().(float64),
	}
}

func (c *Channel) set(ch colourgen.Channel) error {
	if err := c.Brightness.Set(ch.Brightness); err != nil {
		return err
	}
	if err := c.Contrast.Set(ch.Contrast); err != nil {
		return err
	}
	return c.Gamma.Set(ch.Gamma)
}

// Preferences for display and sound.
type Preferences struct {
	dsk *prefs.Disk

	Quality          prefs.Int
	Buffering        prefs.Int
	Brightness       prefs.Float
	Contrast         prefs.Float
	Gamma            prefs.Float
	Saturation       prefs.Float
	Hue              prefs.Float
	Red              Channel
	Green            Channel
	Blue             Channel
	BlendScale1      prefs.Float
	BlendScale2      prefs.Float
	BlendScale3      prefs.Float
	PixelAspectRatio prefs.Float

	DCBlock1           prefs.Float
	DCBlock2           prefs.Float
	Amplitude          prefs.Float
	EqualiserMode      prefs.Int
	EqualiserFrequency prefs.Float
	EqualiserLevel     prefs.Float
	EqualiserQ         prefs.Float

	// notified after a display or sound value changes
	onDisplay func()
	onSound   func()

	// notification is suppressed while more than one value is being set
	batch bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty then the default preferences file in
// the resource directory is used. Values start with the defaults of a
// capture session and are not loaded from disk until Load() is called.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	if path == "" {
		var err error
		path, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	display := []struct {
		key string
		p   prefs.Pref
	}{
		{"display.quality", &p.Quality},
		{"display.bufferingMode", &p.Buffering},
		{"display.brightness", &p.Brightness},
		{"display.contrast", &p.Contrast},
		{"display.gamma", &p.Gamma},
		{"display.saturation", &p.Saturation},
		{"display.hue", &p.Hue},
		{"display.red.brightness", &p.Red.Brightness},
		{"display.red.contrast", &p.Red.Contrast},
		{"display.red.gamma", &p.Red.Gamma},
		{"display.green.brightness", &p.Green.Brightness},
		{"display.green.contrast", &p.Green.Contrast},
		{"display.green.gamma", &p.Green.Gamma},
		{"display.blue.brightness", &p.Blue.Brightness},
		{"display.blue.contrast", &p.Blue.Contrast},
		{"display.blue.gamma", &p.Blue.Gamma},
		{"display.effects.param1", &p.BlendScale1},
		{"display.effects.param2", &p.BlendScale2},
		{"display.effects.param3", &p.BlendScale3},
		{"display.pixelAspectRatio", &p.PixelAspectRatio},
	}

	sound := []struct {
		key string
		p   prefs.Pref
	}{
		{"sound.dcBlockFilter1Freq", &p.DCBlock1},
		{"sound.dcBlockFilter2Freq", &p.DCBlock2},
		{"sound.amplitude", &p.Amplitude},
		{"sound.equalizer.mode", &p.EqualiserMode},
		{"sound.equalizer.frequency", &p.EqualiserFrequency},
		{"sound.equalizer.level", &p.EqualiserLevel},
		{"sound.equalizer.q", &p.EqualiserQ},
	}

	for _, d := range display {
		if err := p.dsk.Add(d.key, d.p); err != nil {
			return nil, err
		}
		d.p.SetHookPost(func(_ prefs.Value) error {
			if !p.batch && p.onDisplay != nil {
				p.onDisplay()
			}
			return nil
		})
	}

	for _, s := range sound {
		if err := p.dsk.Add(s.key, s.p); err != nil {
			return nil, err
		}
		s.p.SetHookPost(func(_ prefs.Value) error {
			if !p.batch && p.onSound != nil {
				p.onSound()
			}
			return nil
		})
	}

	p.batch = true
	defer func() { p.batch = false }()

	if err := p.SetParameters(capture.DefaultParameters(nil)); err != nil {
		return nil, err
	}
	if err := p.SetAudioSettings(capture.DefaultAudioSettings()); err != nil {
		return nil, err
	}

	return p, nil
}

// OnChange sets the functions that are called whenever a display or sound
// value changes. Either function can be nil.
func (p *Preferences) OnChange(display func(colourgen.Parameters), sound func(convert.Settings)) {
	p.onDisplay = nil
	p.onSound = nil
	if display != nil {
		p.onDisplay = func() { display(p.Parameters()) }
	}
	if sound != nil {
		p.onSound = func() { sound(p.AudioSettings()) }
	}
}

// notify both change functions once after a batch of changes
func (p *Preferences) notify() {
	p.batch = false
	if p.onDisplay != nil {
		p.onDisplay()
	}
	if p.onSound != nil {
		p.onSound()
	}
}

// Parameters returns the colour parameters described by the preferences.
// The IndexToYUV implementation and the NTSC flag are not preferences and
// are left at their default values.
func (p *Preferences) Parameters() colourgen.Parameters {
	c := colourgen.DefaultParameters()
	c.Quality = p.Quality.Get().(int)
	c.Buffering = p.Buffering.Get().(int)
	c.Brightness = p.Brightness.Get().(float64)
	c.Contrast = p.Contrast.Get().(float64)
	c.Gamma = p.Gamma.Get().(float64)
	c.Saturation = p.Saturation.Get().(float64)
	c.Hue = p.Hue.Get().(float64)
	c.Red = p.Red.get()
	c.Green = p.Green.get()
	c.Blue = p.Blue.get()
	c.BlendScale1 = p.BlendScale1.Get().(float64)
	c.BlendScale2 = p.BlendScale2.Get().(float64)
	c.BlendScale3 = p.BlendScale3.Get().(float64)
	c.PixelAspectRatio = p.PixelAspectRatio.Get().(float64)
	return c
}

// SetParameters changes every display preference to match the colour
// parameters. The display change function is called once.
func (p *Preferences) SetParameters(c colourgen.Parameters) error {
	batch := p.batch
	p.batch = true

	err := p.setParameters(c)

	if !batch {
		p.batch = false
		if p.onDisplay != nil {
			p.onDisplay()
		}
	}

	return err
}

func (p *Preferences) setParameters(c colourgen.Parameters) error {
	if err := p.Quality.Set(c.Quality); err != nil {
		return err
	}
	if err := p.Buffering.Set(c.Buffering); err != nil {
		return err
	}
	for _, v := range []struct {
		p *prefs.Float
		v float64
	}{
		{&p.Brightness, c.Brightness},
		{&p.Contrast, c.Contrast},
		{&p.Gamma, c.Gamma},
		{&p.Saturation, c.Saturation},
		{&p.Hue, c.Hue},
		{&p.BlendScale1, c.BlendScale1},
		{&p.BlendScale2, c.BlendScale2},
		{&p.BlendScale3, c.BlendScale3},
		{&p.PixelAspectRatio, c.PixelAspectRatio},
	} {
		if err := v.p.Set(v.v); err != nil {
			return err
		}
	}
	if err := p.Red.set(c.Red); err != nil {
		return err
	}
	if err := p.Green.set(c.Green); err != nil {
		return err
	}
	return p.Blue.set(c.Blue)
}

// AudioSettings returns the audio converter settings described by the
// preferences.
func (p *Preferences) AudioSettings() convert.Settings {
	return convert.Settings{
		DCBlock1:           p.DCBlock1.Get().(float64),
		DCBlock2:           p.DCBlock2.Get().(float64),
		Amplitude:          p.Amplitude.Get().(float64),
		EqualiserMode:      p.EqualiserMode.Get().(int),
		EqualiserFrequency: p.EqualiserFrequency.Get().(float64),
		EqualiserLevel:     p.EqualiserLevel.Get().(float64),
		EqualiserQ:         p.EqualiserQ.Get().(float64),
	}
}

// SetAudioSettings changes every sound preference to match the converter
// settings. The sound change function is called once.
func (p *Preferences) SetAudioSettings(s convert.Settings) error {
	batch := p.batch
	p.batch = true

	err := p.setAudioSettings(s)

	if !batch {
		p.batch = false
		if p.onSound != nil {
			p.onSound()
		}
	}

	return err
}

func (p *Preferences) setAudioSettings(s convert.Settings) error {
	if err := p.EqualiserMode.Set(s.EqualiserMode); err != nil {
		return err
	}
	for _, v := range []struct {
		p *prefs.Float
		v float64
	}{
		{&p.DCBlock1, s.DCBlock1},
		{&p.DCBlock2, s.DCBlock2},
		{&p.Amplitude, s.Amplitude},
		{&p.EqualiserFrequency, s.EqualiserFrequency},
		{&p.EqualiserLevel, s.EqualiserLevel},
		{&p.EqualiserQ, s.EqualiserQ},
	} {
		if err := v.p.Set(v.v); err != nil {
			return err
		}
	}
	return nil
}

// Load preferences from disk. The change functions are called once each
// after all values have been loaded.
func (p *Preferences) Load() error {
	p.batch = true
	defer p.notify()
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
