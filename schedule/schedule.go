// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package schedule precomputes the interarrival times of a fixed number of requests
// sent at a target packet rate.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/xmidt-org/poisson/sample"
)

// ErrZeroRate is returned when a rate of zero packets per second is requested.
var ErrZeroRate = errors.New("the rate must be positive")

// Interarrival converts a rate in packets per second into the mean time between packets.
func Interarrival(ratePerSecond uint64) (time.Duration, error) {
	if ratePerSecond == 0 {
		return 0, ErrZeroRate
	}

	return sample.Nanoseconds(float64(time.Second) / float64(ratePerSecond)), nil
}

// Schedule is an immutable sequence of interarrival times.
type Schedule struct {
	interarrivals []time.Duration
	mean          time.Duration
}

// New draws n interarrival times from the distribution of type t whose mean matches the rate.
// If s is nil, sample.DefaultSource() is used.
func New(n int, ratePerSecond uint64, t sample.Type, s sample.Source) (*Schedule, error) {
	mean, err := Interarrival(ratePerSecond)
	if err == nil {
		var d sample.Distribution
		if d, err = sample.New(t, mean, s); err == nil {
			return FromDistribution(n, d), nil
		}
	}

	return nil, fmt.Errorf("failed to initialize distribution: %w", err)
}

// FromDistribution draws n interarrival times from an arbitrary distribution.
func FromDistribution(n int, d sample.Distribution) *Schedule {
	if n < 0 {
		n = 0
	}

	s := &Schedule{
		interarrivals: make([]time.Duration, n),
		mean:          d.Mean(),
	}

	for i := range s.interarrivals {
		s.interarrivals[i] = d.Sample()
	}

	return s
}

// Mean is the mean interarrival time of the distribution this schedule was drawn from.
func (s *Schedule) Mean() time.Duration {
	return s.mean
}

func (s *Schedule) Len() int {
	return len(s.interarrivals)
}

// At returns the i-th interarrival time.  It panics if i is out of range.
func (s *Schedule) At(i int) time.Duration {
	return s.interarrivals[i]
}

// Total is the sum of all the interarrival times, i.e. the offset of the last request.
func (s *Schedule) Total() (total time.Duration) {
	for _, d := range s.interarrivals {
		total += d
	}

	return
}
