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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jetsetilly/gopher264/avi"
	"github.com/jetsetilly/gopher264/capture"
	"github.com/jetsetilly/gopher264/colourgen"
	"github.com/jetsetilly/gopher264/digest"
	"github.com/jetsetilly/gopher264/environment"
	"github.com/jetsetilly/gopher264/keypress"
	"github.com/jetsetilly/gopher264/logger"
	"github.com/jetsetilly/gopher264/metrics"
	"github.com/jetsetilly/gopher264/modalflag"
	"github.com/jetsetilly/gopher264/paths"
	"github.com/jetsetilly/gopher264/preferences"
	"github.com/jetsetilly/gopher264/prefs"
	"github.com/jetsetilly/gopher264/soundload"
	"github.com/jetsetilly/gopher264/statsview"
	"github.com/jetsetilly/gopher264/stream"
	"github.com/jetsetilly/gopher264/testcard"
	"github.com/jetsetilly/gopher264/version"
)

// exit values returned by launch()
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

// number of cycles between checks for a key press or interrupt signal
const stopCheckInterval = 10000

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the command line and runs the selected mode. returns the value
// to be used with os.Exit()
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("ENCODE", "TESTCARD", "INSPECT", "PALETTE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "ENCODE":
		err = encode(md)

	case "TESTCARD":
		err = card(md)

	case "INSPECT":
		err = inspect(md)

	case "PALETTE":
		err = palette(md)

	case "VERSION":
		fmt.Fprintln(output, version.Version().String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitModeError
	}

	return exitOK
}

// source of samples for a capture session. next() returns io.EOF when there
// are no more samples
type source interface {
	next() ([]byte, int16, error)
}

// session bundles the flags shared by the ENCODE and TESTCARD modes
type session struct {
	log      *bool
	wav      *bool
	usePrefs *bool
	set      *string
	metrics  *string
	stats    *bool
	digests  *bool

	videoDigest *digest.Video
	audioDigest *digest.Audio
}

func addSessionFlags(md *modalflag.Modes) *session {
	return &session{
		log:      md.AddBool("log", false, "echo log to stdout"),
		wav:      md.AddBool("wav", false, "also write the audio to a WAV file"),
		usePrefs: md.AddBool("prefs", false, "apply display and sound preferences from the preferences file"),
		set:      md.AddString("set", "", "override preferences (eg. 'display.hue::10; sound.amplitude::0.5')"),
		metrics:  md.AddString("metrics", "", "serve prometheus metrics on the address"),
		stats:    md.AddBool("stats", false, "run the statsview server"),
		digests:  md.AddBool("digest", false, "print the digest of the video and audio written"),
	}
}

// prepare creates the capture instance according to the session flags
func (s *session) prepare(md *modalflag.Modes) (*capture.Capture, error) {
	if *s.log {
		logger.SetEcho(logger.NewColorizer(md.Output), false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *s.stats && statsview.Available() {
		statsview.Launch(md.Output)
	}

	env := environment.NewEnvironment(environment.MainSession)
	cpt, err := capture.NewCapture(env, colourgen.TED)
	if err != nil {
		return nil, err
	}

	if *s.usePrefs {
		if *s.set != "" {
			prefs.PushCommandLineStack(*s.set)
			defer func() {
				if unused := prefs.PopCommandLineStack(); unused != "" {
					logger.Logf(env, "prefs", "unused preferences: %s", unused)
				}
			}()
		}

		pr, err := preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
		if err := pr.Load(); err != nil {
			return nil, err
		}

		// preferences know nothing about the colour index
		params := pr.Parameters()
		params.IndexToYUV = colourgen.TED
		cpt.SetParameters(params)
		cpt.SetAudioSettings(pr.AudioSettings())
	} else if *s.set != "" {
		return nil, fmt.Errorf("-set requires -prefs")
	}

	if *s.metrics != "" {
		m := metrics.New("main")
		cpt.AttachMetrics(m)
		go func() {
			if err := m.Serve(*s.metrics); err != nil {
				logger.Log(env, "metrics", err)
			}
		}()
		fmt.Fprintf(md.Output, "metrics available at %s\n", *s.metrics)
	}

	if *s.digests {
		s.videoDigest = digest.NewVideo()
		s.audioDigest = digest.NewAudio()
		cpt.AttachDigests(s.videoDigest, s.audioDigest)
	}

	return cpt, nil
}

// open the output file and the optional WAV file
func (s *session) open(cpt *capture.Capture, filename string) error {
	if err := cpt.OpenFile(filename); err != nil {
		return err
	}
	if *s.wav {
		return cpt.AttachWAV(filename + ".wav")
	}
	return nil
}

// run the capture until the source is exhausted or until a key is pressed or
// an interrupt signal is received
func (s *session) run(md *modalflag.Modes, cpt *capture.Capture, src source) error {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	pressed, restore, err := keypress.Listen(os.Stdin)
	if err != nil {
		return err
	}
	defer restore()

	var runErr error

	done := false
	for cycles := 0; !done; cycles++ {
		if cycles%stopCheckInterval == 0 {
			select {
			case <-intChan:
				done = true
				continue
			case <-pressed:
				done = true
				continue
			default:
			}
		}

		sample, audio, err := src.next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				runErr = err
			}
			break
		}

		if err := cpt.RunOneCycle(sample, audio); err != nil {
			runErr = err
			break
		}
	}

	if err := cpt.CloseFile(); err != nil && runErr == nil {
		runErr = err
	}

	cpt.Summary(md.Output)

	if s.videoDigest != nil {
		fmt.Fprintf(md.Output, "video digest: %s\n", s.videoDigest.Hash())
		fmt.Fprintf(md.Output, "audio digest: %s\n", s.audioDigest.Hash())
	}

	return runErr
}

// streamSource reads samples from a recorded stream
type streamSource struct {
	rd *stream.Reader
}

func (src streamSource) next() ([]byte, int16, error) {
	return src.rd.Next()
}

func encode(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp(`Encode a recorded sample stream to an AVI file. The output filename is
optional and will be generated from the name of the stream if it is omitted.
Encoding can be stopped early by pressing a key.`)

	s := addSessionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var outName string

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("stream file required for %s mode", md)
	case 1:
		outName = paths.UniqueFilename("capture", md.GetArg(0)) + ".avi"
	case 2:
		outName = md.GetArg(1)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	f, err := os.Open(md.GetArg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := stream.NewReader(f)
	if err != nil {
		return err
	}

	cpt, err := s.prepare(md)
	if err != nil {
		return err
	}

	hdr := rd.Header()
	cpt.SetNTSCMode(hdr.NTSC)
	if err := cpt.SetClockFrequency(hdr.ClockFrequency); err != nil {
		return err
	}

	if err := s.open(cpt, outName); err != nil {
		return err
	}

	return s.run(md, cpt, streamSource{rd: rd})
}

// cardSource generates samples from a testcard for a fixed number of cycles.
// the audio of the card is replaced by the player if one is present and every
// sample is copied to the stream writer if one is present
type cardSource struct {
	card      *testcard.Card
	player    *soundload.Player
	rec       *stream.Writer
	remaining int
}

func (src *cardSource) next() ([]byte, int16, error) {
	if src.remaining <= 0 {
		return nil, 0, io.EOF
	}
	src.remaining--

	sample, audio := src.card.Next()
	if src.player != nil {
		audio = src.player.Next()
	}

	if src.rec != nil {
		if err := src.rec.Write(sample, audio); err != nil {
			return nil, 0, err
		}
	}

	return sample, audio, nil
}

func card(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp(`Generate a testcard signal and encode it to an AVI file. The audio of the
testcard is a 1kHz tone unless a WAV or MP3 file is specified with -audio.
Patterns are BARS, RAMP, CHECKER and BLACK.`)

	s := addSessionFlags(md)
	ntsc := md.AddBool("ntsc", false, "generate an NTSC signal")
	seconds := md.AddFloat64("seconds", 5.0, "length of the testcard in seconds")
	audioFile := md.AddString("audio", "", "WAV or MP3 file to use as the audio")
	pattern := md.AddString("pattern", "BARS", "testcard pattern")
	interlace := md.AddBool("interlace", false, "generate an interlaced signal")
	streamFile := md.AddString("stream", "", "also record the sample stream to a file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var outName string

	switch len(md.RemainingArgs()) {
	case 0:
		outName = paths.UniqueFilename("capture", "testcard") + ".avi"
	case 1:
		outName = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	pat, err := testcard.PatternFromString(*pattern)
	if err != nil {
		return err
	}

	if *seconds <= 0 {
		return fmt.Errorf("length of testcard must be positive")
	}

	src := &cardSource{
		card: testcard.NewCard(*ntsc, pat, *interlace),
	}
	src.remaining = int(*seconds * float64(src.card.ClockFrequency()))

	cpt, err := s.prepare(md)
	if err != nil {
		return err
	}

	if *audioFile != "" {
		snd, err := soundload.Load(cpt.Environment(), *audioFile)
		if err != nil {
			return err
		}
		src.player = soundload.NewPlayer(snd, src.card.ClockFrequency(), true)
	}

	if *streamFile != "" {
		f, err := os.Create(*streamFile)
		if err != nil {
			return err
		}
		defer f.Close()

		src.rec, err = stream.NewWriter(f, stream.Header{
			NTSC:           src.card.IsNTSC(),
			ClockFrequency: src.card.ClockFrequency(),
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := src.rec.Flush(); err != nil {
				logger.Log(cpt.Environment(), "stream", err)
			}
		}()
	}

	cpt.SetNTSCMode(src.card.IsNTSC())
	if err := cpt.SetClockFrequency(src.card.ClockFrequency()); err != nil {
		return err
	}

	if err := s.open(cpt, outName); err != nil {
		return err
	}

	return s.run(md, cpt, src)
}

func inspect(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("AVI file required for %s mode", md)
	case 1:
		inf, err := avi.Inspect(md.GetArg(0))
		if err != nil {
			return err
		}
		fmt.Fprintln(md.Output, inf.String())
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}
