// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package sample

import (
	"math/rand"
	"sync"
)

// Source produces uniform pseudo-random values in [0,1).  *rand.Rand implements this interface.
//
// A Source shared between goroutines must be safe for concurrent use.  DefaultSource and
// Locked return such sources, NewSource does not.
type Source interface {
	Float64() float64
}

// SourceFunc is a function type that implements Source
type SourceFunc func() float64

func (sf SourceFunc) Float64() float64 {
	return sf()
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// DefaultSource returns the process-wide Source backed by the top-level math/rand functions,
// which are safe for concurrent use.
func DefaultSource() Source {
	return globalSource{}
}

// NewSource creates a seeded Source owned by a single caller.  The returned Source is not
// safe for concurrent use.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

type lockedSource struct {
	lock sync.Mutex
	s    Source
}

func (ls *lockedSource) Float64() (v float64) {
	ls.lock.Lock()
	v = ls.s.Float64()
	ls.lock.Unlock()
	return
}

// Locked decorates a Source so that it may be shared among goroutines.
func Locked(s Source) Source {
	if _, ok := s.(globalSource); ok {
		return s
	}

	return &lockedSource{s: s}
}

// Open draws from s until the value lies in the open interval (0,1).  A Source that only
// ever returns zero makes this function loop forever.
func Open(s Source) float64 {
	for {
		if u := s.Float64(); u > 0.0 && u < 1.0 {
			return u
		}
	}
}
