// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xmidt-org/poisson/latency"
	"github.com/xmidt-org/poisson/ticker"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// result holds the observed durations of every Wait on one ticker, in nanoseconds
type result struct {
	target  time.Duration
	elapsed *latency.Histogram
}

// measure times count consecutive waits on t
func measure(ctx context.Context, t *ticker.Ticker, count int) (result, error) {
	r := result{
		target:  t.Mean(),
		elapsed: latency.NewHistogram(count),
	}

	for i := 0; i < count; i++ {
		start := time.Now()
		if err := t.Wait(ctx); err != nil {
			return r, err
		}

		r.elapsed.Record(uint64(time.Since(start)))
	}

	sallust.Get(ctx).Info(
		"measured ticker",
		zap.Duration("target", r.target),
		zap.Duration("mean", r.mean()),
		zap.Int("count", r.elapsed.Len()),
	)

	return r, nil
}

func (r result) mean() time.Duration {
	if r.elapsed.Len() == 0 {
		return 0
	}

	var total time.Duration
	for _, v := range r.elapsed.Values() {
		total += time.Duration(v)
	}

	return total / time.Duration(r.elapsed.Len())
}

// writeData writes the measurements as whitespace separated columns, one row per wait
func writeData(w io.Writer, results []result) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "Ticker Target_us Actual_us"); err != nil {
		return err
	}

	for _, r := range results {
		target := r.target.Microseconds()
		for _, v := range r.elapsed.Values() {
			if _, err := fmt.Fprintf(bw, "timer %d %d\n", target, time.Duration(v).Microseconds()); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// combine merges every result into a single histogram
func combine(results []result) *latency.Histogram {
	var n int
	for _, r := range results {
		n += r.elapsed.Len()
	}

	h := latency.NewHistogram(n)
	for _, r := range results {
		for _, v := range r.elapsed.Values() {
			h.Record(v)
		}
	}

	return h
}
