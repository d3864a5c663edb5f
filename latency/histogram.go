// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package latency

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// ErrNotSorted is returned by the order statistics of a Histogram that has not been sorted.
var ErrNotSorted = errors.New("the histogram must be sorted before computing statistics")

// Histogram accumulates raw latency values.  Order statistics are computed over the snapshot
// taken by the most recent Sort.  A Histogram is not safe for concurrent use.
type Histogram struct {
	values []uint64
	sorted []uint64
}

// NewHistogram creates an empty Histogram with room for capacity values.
func NewHistogram(capacity int) *Histogram {
	if capacity < 0 {
		capacity = 0
	}

	return &Histogram{
		values: make([]uint64, 0, capacity),
	}
}

// FromValues creates a Histogram that owns the given values.
func FromValues(v []uint64) *Histogram {
	return &Histogram{
		values: v,
	}
}

func (h *Histogram) Record(v uint64) {
	h.values = append(h.values, v)
}

func (h *Histogram) Len() int {
	return len(h.values)
}

// Values returns the recorded values in recording order.  The returned slice must not be modified.
func (h *Histogram) Values() []uint64 {
	return h.values
}

// Sort snapshots and sorts the recorded values.
func (h *Histogram) Sort() {
	h.sorted = slices.Clone(h.values)
	if h.sorted == nil {
		h.sorted = []uint64{}
	}

	slices.Sort(h.sorted)
}

// Sorted tests whether Sort has been called.
func (h *Histogram) Sorted() bool {
	return h.sorted != nil
}

func (h *Histogram) check() error {
	if len(h.sorted) == 0 {
		return ErrNotSorted
	}

	return nil
}

// Quantile returns the value at quantile q, which is expected to lie in [0,1].
func (h *Histogram) Quantile(q float64) (uint64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}

	i := int(float64(len(h.sorted)) * q)
	switch {
	case i < 0:
		i = 0
	case i >= len(h.sorted):
		i = len(h.sorted) - 1
	}

	return h.sorted[i], nil
}

func (h *Histogram) Mean() (float64, error) {
	if err := h.check(); err != nil {
		return 0.0, err
	}

	// incremental mean, so large sums cannot overflow
	var m float64
	for i, v := range h.sorted {
		m += (float64(v) - m) / float64(i+1)
	}

	return m, nil
}

func (h *Histogram) Min() (uint64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}

	return h.sorted[0], nil
}

func (h *Histogram) Max() (uint64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}

	return h.sorted[len(h.sorted)-1], nil
}

var dumpQuantiles = []struct {
	key string
	q   float64
}{
	{"p5_ms", 0.05},
	{"p25_ms", 0.25},
	{"p50_ms", 0.5},
	{"p75_ms", 0.75},
	{"p95_ms", 0.95},
	{"p99_ms", 0.99},
	{"p999_ms", 0.999},
}

// Dump logs the distribution, in milliseconds, as a single info entry.  An empty Histogram logs nothing.
func (h *Histogram) Dump(l *zap.Logger, msg string) error {
	if h.Len() == 0 {
		return nil
	}

	if err := h.check(); err != nil {
		return err
	}

	fields := make([]zap.Field, 0, len(dumpQuantiles)+4)
	for _, dq := range dumpQuantiles {
		v, _ := h.Quantile(dq.q)
		fields = append(fields, zap.Uint64(dq.key, v/1000000))
	}

	var (
		min, _  = h.Min()
		max, _  = h.Max()
		mean, _ = h.Mean()
	)

	fields = append(fields,
		zap.Int("requests_received", h.Len()),
		zap.Uint64("min_ms", min/1000000),
		zap.Uint64("max_ms", max/1000000),
		zap.Float64("avg_ms", mean/1000000.0),
	)

	l.Info(msg, fields...)
	return nil
}

// WriteTo writes every recorded value on its own line.
func (h *Histogram) WriteTo(w io.Writer) (int64, error) {
	return h.WriteTruncatedTo(w, 0)
}

// WriteTruncatedTo writes the recorded values starting at index start, one per line.
func (h *Histogram) WriteTruncatedTo(w io.Writer, start int) (int64, error) {
	var (
		bw    = bufio.NewWriter(w)
		total int64
		buf   []byte
	)

	if start < 0 {
		start = 0
	}

	for i := start; i < len(h.values); i++ {
		buf = strconv.AppendUint(buf[:0], h.values[i], 10)
		buf = append(buf, '\n')
		n, err := bw.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, bw.Flush()
}
