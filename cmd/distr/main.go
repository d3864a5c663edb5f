// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// distr measures how closely tickers follow their target exponential distributions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/segmentio/ksuid"
	"github.com/spf13/pflag"
	"github.com/xmidt-org/poisson/latency"
	"github.com/xmidt-org/poisson/ticker"
	"github.com/xmidt-org/poisson/xmetrics"
	"github.com/xmidt-org/poisson/xviper"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	applicationName = "distr"
)

func writeFile(path string, f func(io.Writer) error) (err error) {
	var file *os.File
	if file, err = os.Create(path); err != nil {
		return
	}

	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	err = f(file)
	return
}

func writeMetrics(g prometheus.Gatherer) func(io.Writer) error {
	return func(w io.Writer) error {
		mfs, err := g.Gather()
		if err != nil {
			return err
		}

		for _, mf := range mfs {
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				return err
			}
		}

		return nil
	}
}

func run(ctx context.Context, c Config) error {
	logger := sallust.Get(ctx)
	registry, err := xmetrics.NewRegistry(&c.Prometheus, ticker.Metrics)
	if err != nil {
		return fmt.Errorf("unable to create metrics registry: %w", err)
	}

	var (
		runID    = ksuid.New().String()
		measures = ticker.NewMeasures(registry)
		results  = make([]result, len(c.Means))
		start    = time.Now()

		g, gctx = errgroup.WithContext(ctx)
	)

	logger.Info("starting run", zap.String("run", runID), zap.Int("tickers", len(c.Means)), zap.Int("count", c.Count))
	for i, mean := range c.Means {
		i := i
		t := ticker.New(
			mean,
			ticker.WithLogger(logger),
			ticker.WithID(fmt.Sprintf("%s-%d", runID, i)),
			ticker.WithMeasures(measures),
		)

		g.Go(func() (err error) {
			results[i], err = measure(gctx, t, c.Count)
			return
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	for _, r := range results {
		r.elapsed.Sort()
		if err := r.elapsed.Dump(logger, fmt.Sprintf("ticker %s", r.target)); err != nil {
			return err
		}
	}

	if err := writeFile(c.Output, func(w io.Writer) error { return writeData(w, results) }); err != nil {
		return fmt.Errorf("unable to write measurements: %w", err)
	}

	if len(c.Summary) > 0 {
		// the summary format is shared with request latency runs; here the values are wait
		// durations, and there is no separate receive phase, so both times are the run's length
		ss := latency.NewSummaryStats(combine(results), elapsed, elapsed)
		if err := ss.WriteFile(c.Summary); err != nil {
			return fmt.Errorf("unable to write summary: %w", err)
		}
	}

	if len(c.Metrics) > 0 {
		if err := writeFile(c.Metrics, writeMetrics(registry)); err != nil {
			return fmt.Errorf("unable to write metrics: %w", err)
		}
	}

	logger.Info("run complete", zap.String("run", runID), zap.Duration("elapsed", elapsed), zap.String("output", c.Output))
	return nil
}

func distr(arguments []string) int {
	fs := newFlagSet()
	if err := fs.Parse(arguments); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		fmt.Fprintf(os.Stderr, "Unable to parse command line: %s\n", err)
		return 2
	}

	v, err := xviper.New(xviper.StdOptions(applicationName, fs))
	if err == nil {
		applyDefaults(v)
		err = xviper.ReadInConfig(v)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read configuration: %s\n", err)
		return 1
	}

	c, err := newConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		return 1
	}

	logger, err := c.Logging.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to create logger: %s\n", err)
		return 1
	}

	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(sallust.With(ctx, logger), c); err != nil {
		logger.Error("run failed", zap.Error(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(distr(os.Args[1:]))
}
