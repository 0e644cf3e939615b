// Package transform implements the image transform driver (spec §4.6):
// a destination-coordinate scan that composes the geometric queue, the
// colour queue, an interpolator and a gain pair into one quantised
// output raster, with row-parallel dispatch across a bounded worker
// pool (spec §5).
package transform

import (
	"context"
	"runtime"
	"sync"
)

// runRowPool dispatches one task per row in [y0,y1) across a worker pool
// of size min(runtime.NumCPU(), rows), grounded on the teacher's
// goroutine/channel/context dispatch idiom (internal/server/worker.go:
// a job channel drained by a fixed set of goroutines, a WaitGroup for
// completion, and a context check at each unit of work for cooperative
// cancellation). Row ordering is irrelevant (spec §5), so there is no
// result-ordering machinery — each worker writes directly into its own
// disjoint row of the write view.
func runRowPool(ctx context.Context, y0, y1 int, work func(j int)) {
	rows := y1 - y0
	if rows <= 0 {
		return
	}
	workers := runtime.NumCPU()
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, rows)
	for j := y0; j < y1; j++ {
		jobs <- j
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				work(j)
			}
		}()
	}
	wg.Wait()
}
