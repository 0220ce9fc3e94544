package runner

import (
	"context"
	"sync"

	"github.com/san-kum/bouncebox/internal/metrics"
)

// Ensemble runs independently seeded simulations, one goroutine each. Every
// simulation stays single-threaded.
type Ensemble struct {
	numRuns    int
	seedStart  int64
	newMetrics func() []metrics.Metric
}

// NewEnsemble builds an ensemble. newMetrics may be nil; when set it is called
// once per run since metrics carry state.
func NewEnsemble(numRuns int, seedStart int64, newMetrics func() []metrics.Metric) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			r := New()
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
