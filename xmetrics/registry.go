// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// Preregistered metrics are wrapped by the Provider methods.  Names that were not preregistered
// produce ad hoc metrics in the registry's namespace and subsystem, cached for later calls.
type Registry interface {
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

func (r *registry) collector(name, metricType string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := NewCollector(Metric{
		Name:      name,
		Type:      metricType,
		Namespace: r.namespace,
		Subsystem: r.subsystem,
	})

	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}

		c = already.ExistingCollector
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounter(name string) metrics.Counter {
	if vec, ok := r.collector(name, CounterType).(*prometheus.CounterVec); ok {
		return gokitprometheus.NewCounter(vec)
	}

	panic(fmt.Errorf("The metric %s is not a counter", name))
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	if vec, ok := r.collector(name, GaugeType).(*prometheus.GaugeVec); ok {
		return gokitprometheus.NewGauge(vec)
	}

	panic(fmt.Errorf("The metric %s is not a gauge", name))
}

// NewHistogram returns a go-kit Histogram for either a preregistered summary or histogram.
// The bucket count is ignored.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	switch vec := r.collector(name, HistogramType).(type) {
	case *prometheus.HistogramVec:
		return gokitprometheus.NewHistogram(vec)
	case *prometheus.SummaryVec:
		return gokitprometheus.NewSummary(vec)
	default:
		panic(fmt.Errorf("The metric %s is not a histogram or summary", name))
	}
}

func (r *registry) Stop() {
}

// NewRegistry creates a Registry from a set of options and preregisters the metrics of each module.
// Duplicate metric names are an error.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for _, module := range modules {
		for _, m := range module() {
			if len(m.Name) == 0 {
				return nil, errNoName
			}

			if _, ok := r.cache[m.Name]; ok {
				return nil, fmt.Errorf("duplicate metric with name: %s", m.Name)
			}

			if len(m.Namespace) == 0 {
				m.Namespace = r.namespace
			}

			if len(m.Subsystem) == 0 {
				m.Subsystem = r.subsystem
			}

			c, err := NewCollector(m)
			if err != nil {
				return nil, err
			}

			if err := r.Registry.Register(c); err != nil {
				return nil, fmt.Errorf("Error while preregistering metric %s: %s", m.Name, err)
			}

			r.cache[m.Name] = c
		}
	}

	return r, nil
}
