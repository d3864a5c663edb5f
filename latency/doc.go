// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package latency records request latencies produced by paced load and summarizes them.

Latencies are nanosecond counts.  Histogram keeps raw values for exact quantiles, Map pairs
send and receive times per request id, and SummaryStats is the bucketed JSON form written at
the end of an experiment.
*/
package latency
