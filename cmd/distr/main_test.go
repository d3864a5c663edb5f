package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/poisson/latency"
	"github.com/xmidt-org/poisson/ticker"
	"github.com/xmidt-org/poisson/xmetrics"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		dir = t.TempDir()
		c   = Config{
			Means:      []time.Duration{200 * time.Microsecond, 500 * time.Microsecond},
			Count:      20,
			Output:     filepath.Join(dir, "distr.data"),
			Summary:    filepath.Join(dir, "summary.json"),
			Metrics:    filepath.Join(dir, "metrics.txt"),
			Prometheus: xmetrics.Options{DisableGoCollector: true, DisableProcessCollector: true},
		}
	)

	require.NoError(run(sallust.With(context.Background(), zap.NewNop()), c))

	data, err := os.Open(c.Output)
	require.NoError(err)
	defer data.Close()

	var (
		scanner = bufio.NewScanner(data)
		rows    = 0
		targets = make(map[string]int)
	)

	require.True(scanner.Scan())
	assert.Equal("Ticker Target_us Actual_us", scanner.Text())
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		require.Len(fields, 3)
		assert.Equal("timer", fields[0])
		targets[fields[1]]++
		rows++
	}

	assert.Equal(40, rows)
	assert.Equal(map[string]int{"200": 20, "500": 20}, targets)

	summary, err := os.ReadFile(c.Summary)
	require.NoError(err)

	var ss latency.SummaryStats
	require.NoError(json.Unmarshal(summary, &ss))
	assert.Equal(40, ss.TotalObjects)
	assert.Equal(40, ss.Histogram.Count)
	assert.Positive(ss.SendTime)
	assert.Equal(ss.SendTime, ss.ReceiveTime)

	metrics, err := os.ReadFile(c.Metrics)
	require.NoError(err)
	assert.Contains(string(metrics), xmetrics.DefaultNamespace+"_"+xmetrics.DefaultSubsystem+"_"+ticker.FireCount+" 40")
}

func TestRunCanceled(t *testing.T) {
	var (
		assert      = assert.New(t)
		dir         = t.TempDir()
		ctx, cancel = context.WithCancel(sallust.With(context.Background(), zap.NewNop()))
	)

	cancel()
	err := run(ctx, Config{
		Means:      []time.Duration{time.Hour},
		Count:      1,
		Output:     filepath.Join(dir, "distr.data"),
		Prometheus: xmetrics.Options{DisableGoCollector: true, DisableProcessCollector: true},
	})

	assert.Equal(context.Canceled, err)
	assert.NoFileExists(filepath.Join(dir, "distr.data"))
}

func TestDistr(t *testing.T) {
	var (
		assert = assert.New(t)
		dir    = t.TempDir()
		output = filepath.Join(dir, "distr.data")
	)

	assert.Zero(distr([]string{"--means", "100us", "--count", "5", "--output", output}))
	assert.FileExists(output)

	assert.Zero(distr([]string{"--help"}))
	assert.Equal(2, distr([]string{"--nosuch"}))
	assert.Equal(1, distr([]string{"--count", "0", "--output", output}))
	assert.Equal(1, distr([]string{"--file", filepath.Join(dir, "missing.yaml")}))
}
