package main

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// heapSampleInterval is how often the heap monitor reads mem stats.
const heapSampleInterval = 25 * time.Millisecond

// heapMonitor records the largest HeapAlloc seen while an index is loaded and checked.
type heapMonitor struct {
	peak     atomic.Uint64
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func startHeapMonitor() *heapMonitor {
	m := &heapMonitor{stop: make(chan struct{}), done: make(chan struct{})}

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(heapSampleInterval)
		defer ticker.Stop()

		for {
			m.sample()

			select {
			case <-m.stop:
				return
			case <-ticker.C:
			}
		}
	}()

	return m
}

func (m *heapMonitor) sample() {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	for {
		peak := m.peak.Load()
		if stats.HeapAlloc <= peak || m.peak.CompareAndSwap(peak, stats.HeapAlloc) {
			return
		}
	}
}

// Stop takes a final sample and returns the peak heap size in bytes. It may be called
// more than once.
func (m *heapMonitor) Stop() uint64 {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done

	m.sample()
	return m.peak.Load()
}
