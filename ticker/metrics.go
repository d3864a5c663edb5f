// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package ticker

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/poisson/xmetrics"
)

const (
	DelaySeconds = "ticker_delay_seconds"
	FireCount    = "ticker_fire_count"
	CancelCount  = "ticker_cancel_count"
)

// Metrics is the ticker module function for metrics
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:    DelaySeconds,
			Type:    xmetrics.HistogramType,
			Help:    "Sampled interarrival delays",
			Buckets: []float64{0.0001, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.5, 1.0},
		},
		{
			Name: FireCount,
			Type: xmetrics.CounterType,
			Help: "Count of ticker firings",
		},
		{
			Name: CancelCount,
			Type: xmetrics.CounterType,
			Help: "Count of waits abandoned because the context ended",
		},
	}
}

// Measures is the set of go-kit metrics a Ticker reports to.  Nil fields are discarded.
type Measures struct {
	Delays  metrics.Histogram
	Fires   metrics.Counter
	Cancels metrics.Counter
}

// NewMeasures produces the ticker Measures from a provider, typically an xmetrics.Registry
// into which Metrics was registered.
func NewMeasures(p provider.Provider) Measures {
	return Measures{
		Delays:  p.NewHistogram(DelaySeconds, 10),
		Fires:   p.NewCounter(FireCount),
		Cancels: p.NewCounter(CancelCount),
	}
}
