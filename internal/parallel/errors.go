// Package parallel partitions a Monte Carlo run into chunks and reduces the
// chunk partials computed concurrently into one aggregate.
package parallel

import (
	"sync"
	"sync/atomic"
)

// ErrorCollector collects the first error from parallel goroutines.
// It is safe for concurrent use.
//
// Usage:
//
//	var ec parallel.ErrorCollector
//	var wg sync.WaitGroup
//	wg.Add(2)
//	go func() {
//	    defer wg.Done()
//	    ec.SetError(runChunk(0))
//	}()
//	go func() {
//	    defer wg.Done()
//	    ec.SetError(runChunk(1))
//	}()
//	wg.Wait()
//	if err := ec.Err(); err != nil {
//	    return err
//	}
type ErrorCollector struct {
	once   sync.Once
	failed atomic.Bool
	err    error
}

// SetError records err if no error has been recorded yet. Nil is ignored.
func (c *ErrorCollector) SetError(err error) {
	if err != nil {
		c.once.Do(func() {
			c.err = err
			c.failed.Store(true)
		})
	}
}

// Failed reports whether an error has been recorded. Unlike Err it may be
// polled by goroutines that are still running.
func (c *ErrorCollector) Failed() bool {
	return c.failed.Load()
}

// Err returns the first recorded error, or nil. Call it after all
// goroutines have completed.
func (c *ErrorCollector) Err() error {
	return c.err
}

// Reset clears the collector for reuse.
// WARNING: This is NOT thread-safe and should only be called when
// no goroutines are using the collector.
func (c *ErrorCollector) Reset() {
	c.once = sync.Once{}
	c.failed.Store(false)
	c.err = nil
}
