package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Run will run the functions read from the given channel concurrently on GOMAXPROCS
// workers. This function returns a wait group synchronized on the invocation functions
// and a pointer to the number of tasks that have completed, which is updated atomically.
func Run(ch <-chan func()) (*sync.WaitGroup, *uint64) {
	var count uint64
	var wg sync.WaitGroup

	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for fn := range ch {
				fn()
				atomic.AddUint64(&count, 1)
			}
		}()
	}

	return &wg, &count
}

// Indexed queues fn(0) through fn(n-1) for Run. The returned wait group is done once every
// invocation has returned. Each invocation owns its index, so results can be written into
// a pre-sized slice without further synchronization.
func Indexed(n int, fn func(i int)) (*sync.WaitGroup, *uint64) {
	ch := make(chan func(), n)
	for i := 0; i < n; i++ {
		i := i
		ch <- func() { fn(i) }
	}
	close(ch)

	return Run(ch)
}

// ForEach invokes fn(0) through fn(n-1) concurrently and blocks until all have returned.
func ForEach(n int, fn func(i int)) {
	wg, _ := Indexed(n, fn)
	wg.Wait()
}
