// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package sample

import (
	"math"
	"time"
)

// Seconds converts a floating-point number of seconds into a time.Duration.  Sub-nanosecond
// remainders are rounded up, and values too large for a Duration saturate at math.MaxInt64.
// Nonpositive and NaN inputs produce zero.
func Seconds(s float64) time.Duration {
	return Nanoseconds(s * float64(time.Second))
}

// Nanoseconds applies the same conversion policy as Seconds to a floating-point nanosecond count.
func Nanoseconds(ns float64) time.Duration {
	switch {
	case !(ns > 0.0):
		return 0

	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)

	default:
		c := math.Ceil(ns)
		if c >= math.MaxInt64 {
			return time.Duration(math.MaxInt64)
		}

		return time.Duration(c)
	}
}
