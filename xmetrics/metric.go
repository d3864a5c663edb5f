// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
	SummaryType   = "summary"
)

var errNoName = errors.New("A name is required for a metric")

// Module is a function type that returns prebuilt metrics.
type Module func() []Metric

// Metric describes a single metric that will be preregistered.  The fields in this type are the
// union of the data needed by the Prometheus Opts structs.
type Metric struct {
	// Name is the required name of this metric.
	Name string

	// Type is one of the type constants in this package.
	Type string

	// Namespace is optional.  The registry's namespace is used when this is unset.
	Namespace string

	// Subsystem is optional.  The registry's subsystem is used when this is unset.
	Subsystem string

	// Help is the help string for this metric.  If not supplied, the metric's name is used
	Help string

	ConstLabels map[string]string
	LabelNames  []string

	// Buckets only applies to histograms
	Buckets []float64

	// Objectives, MaxAge, AgeBuckets, and BufCap only apply to summaries
	Objectives map[float64]float64
	MaxAge     time.Duration
	AgeBuckets uint32
	BufCap     uint32
}

// NewCollector creates a Prometheus vector from a Metric descriptor.  Namespace, subsystem,
// and help take on package defaults when unset.
func NewCollector(m Metric) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errNoName
	}

	if len(m.Namespace) == 0 {
		m.Namespace = DefaultNamespace
	}

	if len(m.Subsystem) == 0 {
		m.Subsystem = DefaultSubsystem
	}

	if len(m.Help) == 0 {
		m.Help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   m.Namespace,
			Subsystem:   m.Subsystem,
			Name:        m.Name,
			Help:        m.Help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, m.LabelNames), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   m.Namespace,
			Subsystem:   m.Subsystem,
			Name:        m.Name,
			Help:        m.Help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, m.LabelNames), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   m.Namespace,
			Subsystem:   m.Subsystem,
			Name:        m.Name,
			Help:        m.Help,
			Buckets:     m.Buckets,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, m.LabelNames), nil

	case SummaryType:
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace:   m.Namespace,
			Subsystem:   m.Subsystem,
			Name:        m.Name,
			Help:        m.Help,
			Objectives:  m.Objectives,
			MaxAge:      m.MaxAge,
			AgeBuckets:  m.AgeBuckets,
			BufCap:      m.BufCap,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, m.LabelNames), nil

	default:
		return nil, fmt.Errorf("Unsupported metric type: %s", m.Type)
	}
}
