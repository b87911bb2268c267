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

// Package metrics exposes the progress of a capture session as prometheus
// metrics. Every Metrics instance has its own registry so that more than one
// session can be measured at once, and so that tests do not share state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gopher264"

// Metrics for a single capture session.
type Metrics struct {
	reg *prometheus.Registry

	// output
	FramesWritten prometheus.Counter
	FramesOutput  prometheus.Counter
	WriteErrors   prometheus.Counter
	FilesOpened   prometheus.Counter

	// demodulator
	Fields    prometheus.Counter
	VSyncs    prometheus.Counter
	Lines     prometheus.Counter
	Resampled prometheus.Counter

	// audio
	AudioDropped prometheus.Counter
	RingFill     prometheus.Gauge

	// configuration
	ClockFrequency prometheus.Gauge
	NTSC           prometheus.Gauge
}

// New creates and registers all metrics. The session name is added as a
// label to every metric.
func New(session string) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	labels := prometheus.Labels{"session": session}

	m := &Metrics{
		reg: reg,

		FramesWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "capture",
			Name:        "frames_written_total",
			Help:        "Number of frames written to the AVI file",
			ConstLabels: labels,
		}),
		FramesOutput: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "capture",
			Name:        "frames_output_total",
			Help:        "Number of output frames produced by the resampler",
			ConstLabels: labels,
		}),
		WriteErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "capture",
			Name:        "write_errors_total",
			Help:        "Number of errors writing the AVI file",
			ConstLabels: labels,
		}),
		FilesOpened: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "capture",
			Name:        "files_opened_total",
			Help:        "Number of AVI files opened",
			ConstLabels: labels,
		}),

		Fields: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "demodulator",
			Name:        "fields_total",
			Help:        "Number of fields completed",
			ConstLabels: labels,
		}),
		VSyncs: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "demodulator",
			Name:        "vsyncs_total",
			Help:        "Number of vertical sync pulses detected",
			ConstLabels: labels,
		}),
		Lines: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "demodulator",
			Name:        "lines_total",
			Help:        "Number of lines decoded",
			ConstLabels: labels,
		}),
		Resampled: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "demodulator",
			Name:        "lines_resampled_total",
			Help:        "Number of lines that needed resampling",
			ConstLabels: labels,
		}),

		AudioDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "audio",
			Name:        "samples_dropped_total",
			Help:        "Number of audio samples dropped because the ring buffer was full",
			ConstLabels: labels,
		}),
		RingFill: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "audio",
			Name:        "ring_fill_ratio",
			Help:        "Fill level of the audio ring buffer",
			ConstLabels: labels,
		}),

		ClockFrequency: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "capture",
			Name:        "clock_frequency_hz",
			Help:        "Input clock frequency",
			ConstLabels: labels,
		}),
		NTSC: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "capture",
			Name:        "ntsc",
			Help:        "One if the session is decoding NTSC",
			ConstLabels: labels,
		}),
	}

	return m
}

// Registry returns the registry used by the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler returns an http.Handler that serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server on the address with the metrics at /metrics.
// The function blocks until the server fails.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
