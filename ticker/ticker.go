// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ticker

import (
	"context"
	"math"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/poisson/clock"
	"github.com/xmidt-org/poisson/sample"
	"github.com/xmidt-org/poisson/xmetrics"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const (
	// SuspiciousFactor is the multiple of the mean above which a sampled delay is logged as suspicious.
	// A zero delay is always suspicious.
	SuspiciousFactor = 10

	// ShortWait is the delay below which a sample is logged at debug level.
	ShortWait = 100 * time.Nanosecond
)

type phase int

const (
	idle phase = iota
	armed
)

// slot holds the one timer a Ticker may have.  timer and deadline are only set while armed.
type slot struct {
	phase    phase
	timer    clock.Timer
	deadline time.Time
}

func (s *slot) arm(c clock.Interface, d time.Duration) {
	now := c.Now()
	*s = slot{
		phase:    armed,
		timer:    c.NewTimer(d),
		deadline: now.Add(d),
	}
}

// release stops any armed timer and returns the slot to idle.
func (s *slot) release() {
	if s.phase == armed {
		s.timer.Stop()
	}

	*s = slot{}
}

// Ticker fires at exponentially distributed intervals around a fixed mean.
// The zero value is not usable; create Tickers with New.
type Ticker struct {
	mean time.Duration

	id           string
	clock        clock.Interface
	source       sample.Source
	distribution sample.Distribution
	logger       *zap.Logger

	delays  xmetrics.Observer
	fires   xmetrics.Adder
	cancels xmetrics.Adder

	slot slot
}

// New creates a Ticker whose mean interarrival time is mean.  No delay is sampled and no timer is
// armed until the first Wait.
//
// The mean must be positive.  A nonpositive mean is not checked and makes every Wait return
// almost immediately.
func New(mean time.Duration, o ...Option) *Ticker {
	t := &Ticker{
		mean:    mean,
		clock:   clock.System(),
		logger:  sallust.Default(),
		delays:  discard.NewHistogram(),
		fires:   discard.NewCounter(),
		cancels: discard.NewCounter(),
	}

	for _, f := range o {
		f(t)
	}

	if t.distribution == nil {
		t.distribution = sample.NewExponential(mean, t.source)
	}

	return t
}

// Mean returns the mean interarrival time this Ticker was created with.
func (t *Ticker) Mean() time.Duration {
	return t.mean
}

// Pending returns the deadline of the armed timer.  The second return is false when no timer
// is armed, which is always the case outside of Wait.
func (t *Ticker) Pending() (time.Time, bool) {
	return t.slot.deadline, t.slot.phase == armed
}

// suspicious reports whether d is zero or more than SuspiciousFactor times the mean.
// A mean too large to multiply has no suspicious samples other than zero.
func (t *Ticker) suspicious(d time.Duration) bool {
	if d == 0 {
		return true
	}

	if t.mean > math.MaxInt64/SuspiciousFactor {
		return false
	}

	return d > SuspiciousFactor*t.mean
}

func (t *Ticker) next() time.Duration {
	d := t.distribution.Sample()
	if t.suspicious(d) {
		t.logger.Warn("suspicious wait", zap.String("id", t.id), zap.Duration("sampled", d), zap.Duration("mean", t.mean))
	}

	if d < ShortWait {
		t.logger.Debug("short wait", zap.String("id", t.id), zap.Duration("sampled", d), zap.Duration("mean", t.mean))
	}

	t.delays.Observe(d.Seconds())
	return d
}

// Wait blocks until the next event of the Poisson process.  A new delay is sampled on every call.
//
// If ctx ends first, the armed timer is released without firing and ctx.Err() is returned.  The
// next Wait then samples a new, independent delay.  A ctx that has already ended returns
// immediately without sampling.
//
// Wait must not be called concurrently on the same Ticker.
func (t *Ticker) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.slot.phase == idle {
		t.slot.arm(t.clock, t.next())
	}

	select {
	case <-t.slot.timer.C():
		t.slot = slot{}
		t.fires.Add(1.0)
		return nil

	case <-ctx.Done():
		t.slot.release()
		t.cancels.Add(1.0)
		return ctx.Err()
	}
}

// Run invokes f after each firing of t until ctx ends, returning ctx.Err().
func Run(ctx context.Context, t *Ticker, f func()) error {
	for {
		if err := t.Wait(ctx); err != nil {
			return err
		}

		f()
	}
}
