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

package capture

import (
	"fmt"

	"github.com/jetsetilly/gopher264/audio/convert"
	"github.com/jetsetilly/gopher264/audio/ring"
	"github.com/jetsetilly/gopher264/avi"
	"github.com/jetsetilly/gopher264/colourgen"
	"github.com/jetsetilly/gopher264/colourgen/colourmap"
	"github.com/jetsetilly/gopher264/curated"
	"github.com/jetsetilly/gopher264/demodulator"
	"github.com/jetsetilly/gopher264/digest"
	"github.com/jetsetilly/gopher264/environment"
	"github.com/jetsetilly/gopher264/logger"
	"github.com/jetsetilly/gopher264/metrics"
	"github.com/jetsetilly/gopher264/resample"
	"github.com/jetsetilly/gopher264/wavwriter"
)

// Sentinal error patterns.
const (
	AllocationError = "capture: allocation: %v"
	ClockError      = "capture: clock: %v"
)

// DefaultClockFrequency is the clock frequency in Hz of a PAL machine.
const DefaultClockFrequency = 1773448

// the number of frames of audio that can be buffered
const ringFrames = 8

// the rate of the audio sent to the converter is one eighth of the clock
// frequency
const audioDivider = 8

// DefaultParameters returns the colour parameters used by a new Capture.
func DefaultParameters(indexToYUV colourgen.IndexToYUV) colourgen.Parameters {
	p := colourgen.DefaultParameters()
	p.IndexToYUV = indexToYUV
	p.Brightness = -1.5 / 255.0
	p.Contrast = 220.0 / 255.0
	p.Saturation = 224.0 / 220.0
	return p
}

// DefaultAudioSettings returns the audio converter settings used by a new
// Capture.
func DefaultAudioSettings() convert.Settings {
	s := convert.DefaultSettings()
	s.EqualiserMode = convert.EqualiserHighShelf
	s.EqualiserFrequency = 14000.0
	s.EqualiserLevel = 0.355
	s.EqualiserQ = 0.7071
	return s
}

// Capture is a capture session.
type Capture struct {
	env *environment.Environment

	conf   avi.Config
	params colourgen.Parameters

	cmap      *colourmap.Colormap
	demod     *demodulator.Demodulator
	resampler *resample.Resampler
	conv      *convert.Converter
	ring      *ring.Ring
	writer    *avi.Writer

	// audio for the frame being written
	audio []int16

	clockFrequency int

	// the duration of one clock cycle and the current time. both are fixed
	// point values in the units of resample.OneSecond
	timeslice int64
	curTime   int64

	// running totals across all files
	framesOutput  int
	framesWritten int
	filesWritten  int

	// the error from the most recent failed write. returned by the next call
	// to RunOneCycle()
	err error

	wav     *wavwriter.WavWriter
	metrics *metrics.Metrics

	videoDigest *digest.Video
	audioDigest *digest.Audio

	// demodulator stats at the most recent update of the metrics
	reported demodulator.Stats
	dropped  uint64
}

// NewCapture is the preferred method of initialisation for the Capture type.
// A nil IndexToYUV implementation will result in a greyscale picture.
func NewCapture(env *environment.Environment, indexToYUV colourgen.IndexToYUV) (*Capture, error) {
	c := &Capture{
		env:  env,
		conf: avi.DefaultConfig(),
	}

	var err error

	c.resampler, err = resample.NewResampler(demodulator.Width, demodulator.Height)
	if err != nil {
		return nil, curated.Errorf(AllocationError, err)
	}

	c.ring, err = ring.NewRing(c.conf.SamplesPerFrame() * ringFrames)
	if err != nil {
		return nil, curated.Errorf(AllocationError, err)
	}

	c.writer, err = avi.NewWriter(c.conf)
	if err != nil {
		return nil, curated.Errorf(AllocationError, err)
	}

	c.conv, err = convert.NewConverter(float64(DefaultClockFrequency/audioDivider), float64(c.conf.SampleRate),
		DefaultAudioSettings(), c.audioOut)
	if err != nil {
		return nil, curated.Errorf(AllocationError, err)
	}

	c.audio = make([]int16, c.conf.SamplesPerFrame())

	c.cmap = colourmap.NewColormap()
	c.SetParameters(DefaultParameters(indexToYUV))

	c.demod = demodulator.NewDemodulator(c.cmap, (*receiver)(c))

	if err := c.SetClockFrequency(DefaultClockFrequency); err != nil {
		return nil, err
	}

	return c, nil
}

// receiver implements the demodulator.Receiver interface for the Capture
// type without exposing the functions.
type receiver Capture

func (r *receiver) AudioSample(s int16) {
	(*Capture)(r).conv.Send(s)
}

func (r *receiver) FrameDone(frame []uint32) {
	(*Capture)(r).frameDone(frame)
}

// audioOut is the output function of the audio converter. the stereo pair is
// folded to mono
func (c *Capture) audioOut(l int16, r int16) {
	s := ((int32(l) + int32(r) + 65537) >> 1) - 32768
	c.ring.Write(int16(s))
}

// Environment returns the environment of the session.
func (c *Capture) Environment() *environment.Environment {
	return c.env
}

// RunOneCycle processes the video sample and audio for one clock cycle of
// the emulated machine.
//
// If writing to the open file has failed since the previous call then the
// error is returned and the file will have been closed. Capture can continue
// after an error but nothing will be written until a new file is opened.
func (c *Capture) RunOneCycle(sample []byte, audio int16) error {
	c.demod.RunOneCycle(sample, audio)
	c.curTime += c.timeslice

	if c.err != nil {
		err := c.err
		c.err = nil
		return err
	}
	return nil
}

// SetClockFrequency changes the frequency in Hz of the input clock. The
// frequency is rounded to the nearest multiple of eight.
func (c *Capture) SetClockFrequency(hz int) error {
	f := (hz + 4) &^ 7
	if f <= 0 {
		return curated.Errorf(ClockError, fmt.Sprintf("invalid frequency (%dHz)", hz))
	}
	if f == c.clockFrequency {
		return nil
	}

	if err := c.conv.SetInputRate(float64(f / audioDivider)); err != nil {
		return curated.Errorf(ClockError, err)
	}

	c.clockFrequency = f
	c.timeslice = resample.OneSecond / int64(f)

	if c.metrics != nil {
		c.metrics.ClockFrequency.Set(float64(f))
	}
	logger.Logf(c.env, "capture", "clock frequency %dHz", f)

	return nil
}

// ClockFrequency returns the current clock frequency in Hz.
func (c *Capture) ClockFrequency() int {
	return c.clockFrequency
}

// SetNTSCMode changes the television mode. Sync state is reset if the mode
// changes.
func (c *Capture) SetNTSCMode(ntsc bool) {
	if ntsc == c.demod.IsNTSC() {
		return
	}
	c.demod.SetNTSCMode(ntsc)

	if c.metrics != nil {
		if ntsc {
			c.metrics.NTSC.Set(1)
		} else {
			c.metrics.NTSC.Set(0)
		}
	}

	if ntsc {
		logger.Log(c.env, "capture", "NTSC mode")
	} else {
		logger.Log(c.env, "capture", "PAL mode")
	}
}

// IsNTSC returns true if the session is decoding NTSC.
func (c *Capture) IsNTSC() bool {
	return c.demod.IsNTSC()
}

// SetParameters changes the colour parameters and rebuilds the colourmap.
// The parameters are clamped.
func (c *Capture) SetParameters(p colourgen.Parameters) {
	c.params = p.Clamped()
	c.cmap.Build(c.params, colourmap.YUV)
	c.cmap.Each(resample.Pack)
}

// Parameters returns the current colour parameters.
func (c *Capture) Parameters() colourgen.Parameters {
	return c.params
}

// SetAudioSettings changes the filter settings of the audio converter.
func (c *Capture) SetAudioSettings(s convert.Settings) {
	c.conv.SetSettings(s)
}

// AudioSettings returns the current filter settings of the audio converter.
func (c *Capture) AudioSettings() convert.Settings {
	return c.conv.Settings()
}

// OpenFile closes any open file and opens a new one. An empty filename
// closes any open file.
func (c *Capture) OpenFile(filename string) error {
	if err := c.CloseFile(); err != nil {
		return err
	}
	if filename == "" {
		return nil
	}

	if err := c.writer.Open(filename); err != nil {
		c.writeError(err)
		return err
	}

	c.filesWritten++
	if c.metrics != nil {
		c.metrics.FilesOpened.Inc()
	}
	logger.Logf(c.env, "capture", "opened %s", filename)

	return nil
}

// CloseFile finalises and closes the open file. Does nothing if there is no
// open file. Any WAV file attached with AttachWAV() is also written and
// detached.
func (c *Capture) CloseFile() error {
	var err error

	if c.writer.IsOpen() {
		filename := c.writer.Filename()
		frames := c.writer.Frames()
		err = c.writer.Close()
		if err != nil {
			c.writeError(err)
		} else {
			logger.Logf(c.env, "capture", "closed %s (%d frames)", filename, frames)
		}
	}

	if c.wav != nil {
		if werr := c.wav.EndMixing(); werr != nil {
			logger.Log(c.env, "capture", werr)
			if err == nil {
				err = werr
			}
		}
		c.wav = nil
	}

	return err
}

// IsOpen returns true if a file is open.
func (c *Capture) IsOpen() bool {
	return c.writer.IsOpen()
}

// FramesWritten returns the number of frames written to the open file.
func (c *Capture) FramesWritten() int {
	return c.writer.Frames()
}

// AttachWAV creates a WAV file alongside the AVI file. Audio is buffered in
// memory and the WAV file is written when the AVI file is closed. Audio for
// frames output while no file is open is not included.
func (c *Capture) AttachWAV(filename string) error {
	w, err := wavwriter.New(filename)
	if err != nil {
		return err
	}
	c.wav = w
	return nil
}

// AttachMetrics attaches metrics to the session. Metrics are updated once
// per field.
func (c *Capture) AttachMetrics(m *metrics.Metrics) {
	c.metrics = m
	c.reported = c.demod.Stats()
	c.dropped = c.ring.Dropped()
	m.ClockFrequency.Set(float64(c.clockFrequency))
	if c.demod.IsNTSC() {
		m.NTSC.Set(1)
	}
}

// AttachDigests adds every frame written to a file to the digests. Either
// digest can be nil.
func (c *Capture) AttachDigests(video *digest.Video, audio *digest.Audio) {
	c.videoDigest = video
	c.audioDigest = audio
}

// writeError records an I/O error. the file will have been closed by the
// writer
func (c *Capture) writeError(err error) {
	logger.Log(c.env, "capture", err)
	if c.metrics != nil {
		c.metrics.WriteErrors.Inc()
	}
}

// the duration of a number of audio samples as a fixed point time. the
// sample rate is scaled down so that the calculation does not overflow
func (c *Capture) audioTime(samples int) int64 {
	const scale = 100
	rate := int64(c.conf.SampleRate / scale)
	return ((int64(samples)*(1000000/scale))<<32 + rate/2) / rate
}

func (c *Capture) frameDone(frame []uint32) {
	c.resampler.Resample(frame, c.curTime)

	frameDuration := resample.OneSecond / int64(c.conf.FrameRate)

	for c.ring.Len() >= len(c.audio) {
		c.ring.Read(c.audio)
		ft := c.resampler.Interpolate(frameDuration)
		c.writeFrame()
		c.resampler.Shift(ft)
		c.curTime -= ft
	}

	c.curTime += c.resampler.Align(c.audioTime(c.ring.Len()))

	c.updateMetrics()
}

func (c *Capture) writeFrame() {
	c.framesOutput++
	if c.metrics != nil {
		c.metrics.FramesOutput.Inc()
	}

	if !c.writer.IsOpen() {
		return
	}

	if err := c.writer.WriteFrame(c.resampler.Output(), c.audio); err != nil {
		c.writeError(err)
		c.err = err
		if c.wav != nil {
			c.wav.Reset()
			c.wav = nil
		}
		return
	}

	c.framesWritten++
	if c.metrics != nil {
		c.metrics.FramesWritten.Inc()
	}

	if c.videoDigest != nil {
		c.videoDigest.Frame(c.resampler.Output())
	}
	if c.audioDigest != nil {
		c.audioDigest.Samples(c.audio)
	}

	if c.wav != nil {
		if err := c.wav.SetAudio(c.audio); err != nil {
			logger.Log(c.env, "capture", err)
		}
	}
}

func (c *Capture) updateMetrics() {
	if c.metrics == nil {
		return
	}

	s := c.demod.Stats()
	c.metrics.Fields.Add(float64(s.Fields - c.reported.Fields))
	c.metrics.VSyncs.Add(float64(s.VSyncs - c.reported.VSyncs))
	c.metrics.Lines.Add(float64(s.Lines - c.reported.Lines))
	c.metrics.Resampled.Add(float64(s.Resampled - c.reported.Resampled))
	c.reported = s

	d := c.ring.Dropped()
	c.metrics.AudioDropped.Add(float64(d - c.dropped))
	c.dropped = d

	c.metrics.RingFill.Set(float64(c.ring.Len()) / float64(c.ring.Cap()))
}
