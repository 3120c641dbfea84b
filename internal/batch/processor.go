// Package batch converts many inputs concurrently and records the outcome
// in a manifest.
package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ogre-meshxml/internal/convert"
)

// Converter converts a single input. *convert.Converter implements it.
type Converter interface {
	Convert(ctx context.Context, input string) convert.Result
}

// Config holds the shared settings for a batch run.
type Config struct {
	Workers int

	// Progress, when positive, prints a progress line at this interval.
	Progress time.Duration
}

// Run converts all inputs using a worker pool. Results are returned in
// input order. Cancelling ctx stops handing out new inputs; inputs never
// started carry ctx.Err().
func Run(ctx context.Context, cfg Config, conv Converter, inputs []string) []convert.Result {
	total := len(inputs)
	results := make([]convert.Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = conv.Convert(ctx, inputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
feed:
	for ; sent < total; sent++ {
		select {
		case jobs <- sent:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = convert.Result{Input: inputs[i], Err: ctx.Err()}
	}
	return results
}

// Failed counts results with an error.
func Failed(results []convert.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
