package ingest

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds how many sources are queried at once
const maxConcurrentFetches = 4

// FetchAll queries every source concurrently and collects the postings per
// source name. A failing source is logged and skipped so one unreachable
// board cannot sink a whole scrape; only context cancellation aborts the run.
func FetchAll(ctx context.Context, sources []Source, query, location string, limit int) (map[string][]RawPosting, error) {
	results := make(map[string][]RawPosting, len(sources))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, src := range sources {
		g.Go(func() error {
			postings, err := src.Fetch(gctx, query, location, limit)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[ingest] source %s failed: %v", src.Name(), err)
				return nil
			}
			mu.Lock()
			results[src.Name()] = postings
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
