package client

import (
	"context"
	"sync"

	"github.com/sajjad-MoBe/fetchprobe/outcome"
)

// BatchResult pairs a fetched URL with its outcome
type BatchResult struct {
	URL     string
	Outcome outcome.Outcome
}

// FetchAll fetches every URL concurrently and returns one result per
// URL, in input order. Each fetch is independent; a failure of one does
// not affect the others.
func (c *Client) FetchAll(ctx context.Context, urls []string) []BatchResult {
	results := make([]BatchResult, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			results[i] = BatchResult{
				URL:     u,
				Outcome: c.Fetch(ctx, u),
			}
		}(i, u)
	}
	wg.Wait()

	return results
}
