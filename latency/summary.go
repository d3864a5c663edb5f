// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package latency

import (
	"io"
	"os"
	"time"

	"github.com/ugorji/go/codec"
)

// DefaultPrecision is the bucket width of a SummaryHistogram: one millisecond, in nanoseconds.
const DefaultPrecision uint64 = 1000000

var summaryHandle = &codec.JsonHandle{
	MapKeyAsString: true,
}

// SummaryHistogram counts values in buckets of width Precision.  A value v is counted
// in the bucket keyed by the upper edge (v/Precision + 1) * Precision.
type SummaryHistogram struct {
	Precision uint64            `json:"precision"`
	Buckets   map[uint64]uint64 `json:"map"`
	Count     int               `json:"count"`
}

// NewSummaryHistogram creates an empty SummaryHistogram.  A zero precision means DefaultPrecision.
func NewSummaryHistogram(precision uint64) SummaryHistogram {
	if precision == 0 {
		precision = DefaultPrecision
	}

	return SummaryHistogram{
		Precision: precision,
		Buckets:   make(map[uint64]uint64),
	}
}

// Summarize buckets every value recorded in h.
func Summarize(precision uint64, h *Histogram) SummaryHistogram {
	sh := NewSummaryHistogram(precision)
	for _, v := range h.Values() {
		sh.Record(v)
	}

	return sh
}

func (sh *SummaryHistogram) Record(v uint64) {
	bucket := (v/sh.Precision + 1) * sh.Precision
	sh.Buckets[bucket]++
	sh.Count++
}

// SummaryStats is the JSON record of one experiment.  Times are in seconds.
type SummaryStats struct {
	Histogram    SummaryHistogram `json:"histogram"`
	TotalObjects int              `json:"total_objects"`
	SendTime     float64          `json:"send_time"`
	ReceiveTime  float64          `json:"receive_time"`
}

func NewSummaryStats(h *Histogram, sendTime, receiveTime time.Duration) SummaryStats {
	return SummaryStats{
		Histogram:    Summarize(DefaultPrecision, h),
		TotalObjects: h.Len(),
		SendTime:     sendTime.Seconds(),
		ReceiveTime:  receiveTime.Seconds(),
	}
}

// Encode writes these stats as JSON.
func (ss SummaryStats) Encode(w io.Writer) error {
	return codec.NewEncoder(w, summaryHandle).Encode(ss)
}

// WriteFile creates or truncates path and writes these stats to it as JSON.
func (ss SummaryStats) WriteFile(path string) (err error) {
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	err = ss.Encode(f)
	return
}
