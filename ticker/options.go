// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ticker

import (
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/poisson/clock"
	"github.com/xmidt-org/poisson/sample"
	"github.com/xmidt-org/poisson/xmetrics"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option represents a configuration option for a Ticker
type Option func(*Ticker)

// WithClock sets the time facility used to arm timers.  If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(t *Ticker) {
		if c != nil {
			t.clock = c
		} else {
			t.clock = clock.System()
		}
	}
}

// WithSource sets the uniform random source for the default exponential distribution.
// A source shared by several Tickers must be safe for concurrent use.  If nil,
// sample.DefaultSource() is used.
func WithSource(s sample.Source) Option {
	return func(t *Ticker) {
		t.source = s
	}
}

// WithDistribution replaces the exponential distribution entirely, e.g. with sample.Constant
// for evenly paced ticks.  If nil, the exponential distribution around the mean is used.
func WithDistribution(d sample.Distribution) Option {
	return func(t *Ticker) {
		t.distribution = d
	}
}

// WithLogger sets the logger for sampling diagnostics.  If nil, sallust.Default() is used.
func WithLogger(l *zap.Logger) Option {
	return func(t *Ticker) {
		if l != nil {
			t.logger = l
		} else {
			t.logger = sallust.Default()
		}
	}
}

// WithID sets an identifier included in every log entry of the Ticker.
func WithID(id string) Option {
	return func(t *Ticker) {
		t.id = id
	}
}

// WithDelays establishes a metric that observes every sampled delay, in seconds.
// If nil, observations are discarded.
func WithDelays(o xmetrics.Observer) Option {
	return func(t *Ticker) {
		if o != nil {
			t.delays = o
		} else {
			t.delays = discard.NewHistogram()
		}
	}
}

// WithFires establishes a metric that counts firings.  If nil, firings are not counted.
func WithFires(a xmetrics.Adder) Option {
	return func(t *Ticker) {
		if a != nil {
			t.fires = a
		} else {
			t.fires = discard.NewCounter()
		}
	}
}

// WithCancels establishes a metric that counts waits abandoned because their context ended.
// If nil, cancellations are not counted.
func WithCancels(a xmetrics.Adder) Option {
	return func(t *Ticker) {
		if a != nil {
			t.cancels = a
		} else {
			t.cancels = discard.NewCounter()
		}
	}
}

// WithMeasures applies all of the metrics in m.
func WithMeasures(m Measures) Option {
	return func(t *Ticker) {
		WithDelays(m.Delays)(t)
		WithFires(m.Fires)(t)
		WithCancels(m.Cancels)(t)
	}
}
