package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	testData := []struct {
		metric   Metric
		expected interface{}
	}{
		{Metric{Name: "c", Type: CounterType}, (*prometheus.CounterVec)(nil)},
		{Metric{Name: "g", Type: GaugeType, Help: "a gauge"}, (*prometheus.GaugeVec)(nil)},
		{Metric{Name: "h", Type: HistogramType, Buckets: []float64{0.1, 1.0}}, (*prometheus.HistogramVec)(nil)},
		{Metric{Name: "s", Type: SummaryType, Objectives: map[float64]float64{0.5: 0.05}}, (*prometheus.SummaryVec)(nil)},
		{Metric{Name: "l", Type: CounterType, LabelNames: []string{"id"}}, (*prometheus.CounterVec)(nil)},
	}

	for _, record := range testData {
		t.Run(record.metric.Name, func(t *testing.T) {
			c, err := NewCollector(record.metric)
			require.NoError(t, err)
			assert.IsType(t, record.expected, c)
		})
	}
}

func TestNewCollectorErrors(t *testing.T) {
	var assert = assert.New(t)

	c, err := NewCollector(Metric{Type: CounterType})
	assert.Nil(c)
	assert.Equal(errNoName, err)

	c, err = NewCollector(Metric{Name: "bad", Type: "nosuch"})
	assert.Nil(c)
	assert.Error(err)
}
