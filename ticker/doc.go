// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package ticker provides a Ticker whose firings form a Poisson arrival process.

Each call to Wait samples a fresh exponentially distributed delay, arms a single timer for it,
and blocks until that timer fires or the context ends.  There is never more than one armed
timer per Ticker, and nothing carries over from one Wait to the next:

	t := ticker.New(10 * time.Millisecond)
	for {
		if err := t.Wait(ctx); err != nil {
			return err
		}

		sendRequest()
	}

A Ticker is intended to be driven by one goroutine.  Distinct Tickers share no state other than
an optional, concurrency-safe sample.Source.
*/
package ticker
