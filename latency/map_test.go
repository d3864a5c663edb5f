package latency

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var epoch = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// newTestMap sends ids 0..4 every 10ms, each answered 5ms later, except id 3 which is answered
// after 100ms.
func newTestMap(t *testing.T) *Map {
	m := NewMap()
	for id := 0; id < 5; id++ {
		rtt := 5
		if id == 3 {
			rtt = 100
		}

		require.NoError(t, m.Record(id, Entry{Sent: at(id * 10), Received: at(id*10 + rtt)}))
	}

	return m
}

func TestEntry(t *testing.T) {
	var assert = assert.New(t)

	e := Entry{Sent: at(0), Received: at(7)}
	assert.False(e.Dropped())
	assert.Equal(7*time.Millisecond, e.Latency())

	dropped := Entry{Sent: at(0)}
	assert.True(dropped.Dropped())
	assert.Zero(dropped.Latency())
}

func TestMapRecord(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = NewMap()
	)

	assert.NoError(m.Record(1, Entry{Sent: at(0), Received: at(1)}))
	assert.NoError(m.Record(2, Entry{Sent: at(0)}))
	assert.Error(m.Record(3, Entry{Sent: at(5), Received: at(1)}))
	assert.Equal(2, m.Len())

	e, ok := m.Get(1)
	assert.True(ok)
	assert.Equal(time.Millisecond, e.Latency())

	_, ok = m.Get(3)
	assert.False(ok)
}

func TestFromTimes(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = FromTimes(
			map[int]time.Time{1: at(0), 2: at(1)},
			map[int]time.Time{1: at(4), 7: at(9)},
		)
	)

	assert.Equal(2, m.Len())

	e, _ := m.Get(1)
	assert.Equal(4*time.Millisecond, e.Latency())

	e, _ = m.Get(2)
	assert.True(e.Dropped())

	_, ok := m.Get(7)
	assert.False(ok)
}

func TestMapWriteTo(t *testing.T) {
	var (
		assert = assert.New(t)
		m      = NewMap()
		b      bytes.Buffer
	)

	m.Record(2, Entry{Sent: at(0)})
	m.Record(1, Entry{Sent: at(0), Received: at(250)})

	n, err := m.WriteTo(&b)
	assert.NoError(err)
	assert.Equal("1,0.25\n2, DROPPED\n", b.String())
	assert.Equal(int64(b.Len()), n)
}

func TestMapDump(t *testing.T) {
	var (
		core, logs = observer.New(zapcore.InfoLevel)
		m          = newTestMap(t)
	)

	m.Dump(zap.New(core), "latencies")
	entries := logs.FilterMessage("latencies").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].ContextMap()["len"])
}

func TestMapRangeComplete(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		m       = newTestMap(t)
	)

	r, err := m.Range(0, 4, false)
	require.NoError(err)
	assert.Equal(4, r.Sent)
	assert.Equal(4, r.Received)
	assert.Equal(40*time.Millisecond, r.SendTime)

	// id 3 was sent at 30ms and answered at 130ms
	assert.Equal(130*time.Millisecond, r.ReceiveTime)
	assert.Equal(
		[]uint64{uint64(5 * time.Millisecond), uint64(5 * time.Millisecond), uint64(5 * time.Millisecond), uint64(100 * time.Millisecond)},
		r.Histogram.Values(),
	)
}

func TestMapRangeWindow(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		m       = newTestMap(t)
	)

	require.NoError(m.Record(2, Entry{Sent: at(20)}))

	r, err := m.Range(0, 4, true)
	require.NoError(err)
	assert.Equal(5, r.Sent)

	// id 2 was dropped and id 3 was answered after id 4 was sent
	assert.Equal(2, r.Received)
	assert.Equal(40*time.Millisecond, r.SendTime)
	assert.Equal(40*time.Millisecond, r.ReceiveTime)
}

func TestMapRangeErrors(t *testing.T) {
	m := newTestMap(t)
	require.NoError(t, m.Record(2, Entry{Sent: at(20)}))
	require.NoError(t, m.Record(10, Entry{Sent: at(0)}))
	require.NoError(t, m.Record(20, Entry{Sent: at(500)}))
	require.NoError(t, m.Record(21, Entry{Sent: at(600), Received: at(601)}))
	require.NoError(t, m.Record(25, Entry{Sent: at(100)}))
	require.NoError(t, m.Record(30, Entry{Sent: at(100), Received: at(101)}))
	require.NoError(t, m.Record(31, Entry{Sent: at(0), Received: at(1)}))
	require.NoError(t, m.Record(32, Entry{Sent: at(200), Received: at(201)}))

	testData := []struct {
		name       string
		start, end int
		window     bool
	}{
		{"Empty", 4, 4, false},
		{"Reversed", 4, 1, true},
		{"MissingStart", 7, 10, false},
		{"MissingEnd", 0, 9, false},
		{"EndSentFirst", 20, 25, false},
		{"Dropped", 0, 4, false},
		{"Gap", 4, 10, true},
		{"ReceivedBeforeFirst", 30, 32, false},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			_, err := m.Range(record.start, record.end, record.window)
			assert.Error(t, err)
		})
	}
}
