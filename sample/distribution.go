// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package sample

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Distribution produces interarrival delays.
type Distribution interface {
	// Sample draws the next delay.  Each call is independent of the previous ones.
	Sample() time.Duration

	// Mean is the expected value of Sample.
	Mean() time.Duration
}

// Exponential is the interarrival distribution of a Poisson process.
type Exponential struct {
	mean    time.Duration
	seconds float64
	source  Source
}

var _ Distribution = (*Exponential)(nil)

// NewExponential creates an exponential distribution with the given mean interarrival time.
// The mean is expected to be positive.  If s is nil, DefaultSource is used.
func NewExponential(mean time.Duration, s Source) *Exponential {
	if s == nil {
		s = DefaultSource()
	}

	return &Exponential{
		mean:    mean,
		seconds: mean.Seconds(),
		source:  s,
	}
}

func (e *Exponential) Mean() time.Duration {
	return e.mean
}

// Sample computes -ln(u)·μ for a fresh u in (0,1).
func (e *Exponential) Sample() time.Duration {
	return Seconds(-math.Log(Open(e.source)) * e.seconds)
}

// Constant always produces its mean.  It models a uniformly paced (non-random) arrival process.
type Constant time.Duration

var _ Distribution = Constant(0)

// NewConstant returns a Distribution whose every sample is d.
func NewConstant(d time.Duration) Constant {
	return Constant(d)
}

func (c Constant) Mean() time.Duration {
	return time.Duration(c)
}

func (c Constant) Sample() time.Duration {
	return time.Duration(c)
}

// Type enumerates the supported kinds of interarrival distribution.
type Type int

const (
	// ExponentialType selects Exponential, i.e. Poisson arrivals.
	ExponentialType Type = iota

	// UniformType selects Constant, i.e. evenly paced arrivals.
	UniformType
)

func (t Type) String() string {
	switch t {
	case ExponentialType:
		return "exponential"
	case UniformType:
		return "uniform"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType maps a case-insensitive name onto a Type.  "exp" is accepted as an alias for "exponential".
func ParseType(v string) (Type, error) {
	switch strings.ToLower(v) {
	case "uniform":
		return UniformType, nil
	case "exponential", "exp":
		return ExponentialType, nil
	default:
		return 0, fmt.Errorf("%s distribution type unknown", v)
	}
}

// New creates the Distribution of type t with the given mean.  The Source is ignored by
// deterministic distributions.
func New(t Type, mean time.Duration, s Source) (Distribution, error) {
	switch t {
	case ExponentialType:
		return NewExponential(mean, s), nil
	case UniformType:
		return NewConstant(mean), nil
	default:
		return nil, fmt.Errorf("unsupported distribution type: %s", t)
	}
}
