package ifv

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// minChunkSize keeps tiny inputs from being split across goroutines.
const minChunkSize = 64

// ScoreConcurrent computes the same result as Score, splitting the input
// into contiguous chunks scored by up to workers goroutines. Every chunk
// uses the cardinality of the whole set. The only error returned is the
// context error when ctx is done before all chunks are scored.
func ScoreConcurrent(ctx context.Context, ifvs []IFV, workers int) ([]ScoreResult, error) {
	if workers < 1 {
		workers = 1
	}

	n := len(ifvs)
	out := make([]ScoreResult, n)
	if n == 0 {
		return out, nil
	}

	size := (n + workers - 1) / workers
	if size < minChunkSize {
		size = minChunkSize
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += size {
		end := min(start+size, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scoreInto(out[start:end], ifvs[start:end], n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
