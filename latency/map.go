// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package latency

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var errEmptyRange = errors.New("start id must be less than end id")

// Entry is the timing of one request.  A zero Received means the request was dropped.
type Entry struct {
	Sent     time.Time
	Received time.Time
}

// Dropped tests whether no response was received for this request.
func (e Entry) Dropped() bool {
	return e.Received.IsZero()
}

// Latency is the round trip time of the request.  It is zero for dropped requests.
func (e Entry) Latency() time.Duration {
	if e.Dropped() {
		return 0
	}

	return e.Received.Sub(e.Sent)
}

// Map tracks requests by id.  A Map is not safe for concurrent use.
type Map struct {
	entries map[int]Entry
}

func NewMap() *Map {
	return &Map{
		entries: make(map[int]Entry),
	}
}

// FromTimes joins separately collected send and receive times.  Ids missing from recv are dropped
// requests; ids only present in recv are ignored.
func FromTimes(sent, recv map[int]time.Time) *Map {
	m := &Map{
		entries: make(map[int]Entry, len(sent)),
	}

	for id, s := range sent {
		m.entries[id] = Entry{Sent: s, Received: recv[id]}
	}

	return m
}

// Record stores the timing of a request, replacing any previous entry for the same id.
func (m *Map) Record(id int, e Entry) error {
	if !e.Dropped() && e.Received.Before(e.Sent) {
		return fmt.Errorf("End time is before start time: id %d, start %s, end %s", id, e.Sent, e.Received)
	}

	m.entries[id] = e
	return nil
}

func (m *Map) Get(id int) (Entry, bool) {
	e, ok := m.entries[id]
	return e, ok
}

func (m *Map) Len() int {
	return len(m.entries)
}

func (m *Map) Dump(l *zap.Logger, msg string) {
	l.Info(msg, zap.Int("len", m.Len()))
}

// WriteTo writes one "id,seconds" line per request in id order.  Dropped requests are
// written as "id, DROPPED".
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	var (
		bw    = bufio.NewWriter(w)
		total int64
		ids   = maps.Keys(m.entries)
	)

	slices.Sort(ids)
	for _, id := range ids {
		var (
			e   = m.entries[id]
			n   int
			err error
		)

		if e.Dropped() {
			n, err = fmt.Fprintf(bw, "%d, DROPPED\n", id)
		} else {
			n, err = fmt.Fprintf(bw, "%d,%v\n", id, e.Latency().Seconds())
		}

		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, bw.Flush()
}

// RangeResult summarizes the requests with ids in [start, end).
type RangeResult struct {
	Histogram   *Histogram
	Sent        int
	Received    int
	SendTime    time.Duration
	ReceiveTime time.Duration
}

// Range computes the latency histogram of the requests with ids in [start, end).
//
// When useTimeWindow is false, every request in the range must have been answered.  SendTime is
// the span between sending start and sending end, and ReceiveTime is the span from sending start
// to the last response.
//
// When useTimeWindow is true, only responses that arrived by the time end was sent are counted,
// which is the only meaningful mode when requests were dropped.  SendTime and ReceiveTime are then
// both the span between sending start and sending end.
func (m *Map) Range(start, end int, useTimeWindow bool) (RangeResult, error) {
	if start >= end {
		return RangeResult{}, errEmptyRange
	}

	first, ok := m.entries[start]
	if !ok {
		return RangeResult{}, fmt.Errorf("start id not found in map: %d", start)
	}

	last, ok := m.entries[end]
	if !ok {
		return RangeResult{}, fmt.Errorf("end id not found in map: %d", end)
	}

	if last.Sent.Before(first.Sent) {
		return RangeResult{}, fmt.Errorf("End time is before start time: start id %d, end id %d", start, end)
	}

	if useTimeWindow {
		return m.window(start, end, first, last)
	}

	return m.complete(start, end, first, last)
}

func (m *Map) complete(start, end int, first, last Entry) (RangeResult, error) {
	var (
		h           = NewHistogram(end - start)
		receiveTime time.Duration
	)

	for id := start; id < end; id++ {
		e, ok := m.entries[id]
		switch {
		case !ok:
			return RangeResult{}, fmt.Errorf("id not found in map: %d", id)
		case e.Dropped():
			return RangeResult{}, fmt.Errorf("id has no receive time: %d; cannot use id-based window with drops", id)
		case e.Received.Before(first.Sent):
			return RangeResult{}, fmt.Errorf("for id %d, receive time %s is before the send time of the first id %s", id, e.Received, first.Sent)
		}

		h.Record(uint64(e.Latency()))
		if since := e.Received.Sub(first.Sent); since > receiveTime {
			receiveTime = since
		}
	}

	return RangeResult{
		Histogram:   h,
		Sent:        end - start,
		Received:    h.Len(),
		SendTime:    last.Sent.Sub(first.Sent),
		ReceiveTime: receiveTime,
	}, nil
}

func (m *Map) window(start, end int, first, last Entry) (RangeResult, error) {
	h := NewHistogram(end - start)
	for id := start; id < end; id++ {
		e, ok := m.entries[id]
		if !ok {
			return RangeResult{}, fmt.Errorf("id not found in map: %d", id)
		}

		if !e.Dropped() && !e.Received.After(last.Sent) {
			h.Record(uint64(e.Latency()))
		}
	}

	span := last.Sent.Sub(first.Sent)
	return RangeResult{
		Histogram:   h,
		Sent:        end - start + 1,
		Received:    h.Len(),
		SendTime:    span,
		ReceiveTime: span,
	}, nil
}
