// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/poisson/xmetrics"
	"github.com/xmidt-org/poisson/xviper"
	"github.com/xmidt-org/sallust"
)

const (
	MeansFlag   = "means"
	CountFlag   = "count"
	OutputFlag  = "output"
	SummaryFlag = "summary"
	MetricsFlag = "metrics"

	DefaultCount  = 1000
	DefaultOutput = "./distr.data"
)

var (
	errNoMeans  = errors.New("at least one mean is required")
	errBadMean  = errors.New("means must be positive")
	errBadCount = errors.New("the count must be positive")

	defaultMeans = []string{"100us", "1ms", "2ms", "8ms"}
)

// Config is the complete configuration for a distr run
type Config struct {
	Means   []time.Duration
	Count   int
	Output  string
	Summary string
	Metrics string

	Logging    sallust.Config
	Prometheus xmetrics.Options
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.String(xviper.DefaultFileFlag, "", "the configuration file to use instead of searching for one")
	fs.StringSlice(MeansFlag, defaultMeans, "the target mean interarrival times, one ticker per mean")
	fs.Int(CountFlag, DefaultCount, "the number of ticks measured per ticker")
	fs.String(OutputFlag, DefaultOutput, "the file to which individual measurements are written")
	fs.String(SummaryFlag, "", "if set, the file to which a JSON summary of all measured wait durations is written. "+
		"Its histogram buckets wait durations rather than request latencies, and send_time and receive_time both hold the wall-clock length of the run")
	fs.String(MetricsFlag, "", "if set, the file to which ticker metrics are written in the Prometheus text format")
	return fs
}

func applyDefaults(v *viper.Viper) {
	xviper.ApplyDefaults(v, xviper.Defaults{
		"logging.level":                      "info",
		"logging.encoding":                   "json",
		"logging.outputPaths":                []string{"stderr"},
		"logging.errorOutputPaths":           []string{"stderr"},
		"logging.encoderConfig.messageKey":   "msg",
		"logging.encoderConfig.levelKey":     "level",
		"logging.encoderConfig.timeKey":      "ts",
		"logging.encoderConfig.encodeLevel":  "lowercase",
		"logging.encoderConfig.encodeTime":   "iso8601",
		"prometheus.disableGoCollector":      true,
		"prometheus.disableProcessCollector": true,
	})
}

func newConfig(v *viper.Viper) (c Config, err error) {
	if c.Means, err = xviper.Durations(v, MeansFlag); err != nil {
		return
	}

	c.Count = v.GetInt(CountFlag)
	c.Output = v.GetString(OutputFlag)
	c.Summary = v.GetString(SummaryFlag)
	c.Metrics = v.GetString(MetricsFlag)

	if err = xviper.UnmarshalKey(v, "logging", &c.Logging); err != nil {
		return
	}

	if err = xviper.UnmarshalKey(v, "prometheus", &c.Prometheus); err != nil {
		return
	}

	err = c.validate()
	return
}

func (c Config) validate() error {
	if len(c.Means) == 0 {
		return errNoMeans
	}

	for _, m := range c.Means {
		if m <= 0 {
			return errBadMean
		}
	}

	if c.Count < 1 {
		return errBadCount
	}

	return nil
}
