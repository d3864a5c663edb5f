// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package sample draws interarrival delays for Poisson and fixed-rate processes.

An exponential distribution with mean μ is sampled by inverse transform: given u uniform on
the open interval (0,1), -ln(u)·μ is exponentially distributed with rate 1/μ.  Sampled seconds
are converted to a time.Duration by rounding up to the next whole nanosecond, so that every
strictly positive sample yields a strictly positive delay.  Values beyond the range of
time.Duration saturate at the maximum Duration.  The exponential tail is never clamped
otherwise.
*/
package sample
