package gobucket

import (
	"context"
	"iter"
)

// ListOptions controls pagination of list operations.
type ListOptions struct {
	// Page is the 1-based page number to fetch.
	Page int `url:"page,omitempty"`

	// PageLen is the number of items per page.
	PageLen int `url:"pagelen,omitempty"`
}

// page is the envelope Bitbucket wraps paginated V2 responses in.
type page[T any] struct {
	Size     int    `json:"size,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageLen  int    `json:"pagelen,omitempty"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Values   []T    `json:"values"`
}

// listPage fetches a single page of results from path.
func listPage[T any](ctx context.Context, c *Client, path string) ([]*T, error) {
	var p page[T]
	if err := c.get(ctx, path, &p); err != nil {
		return nil, err
	}
	return ptrs(p.Values), nil
}

// allPages iterates over every item reachable from path,
// following "next" links until exhausted.
// Iteration stops after yielding the first error.
func allPages[T any](ctx context.Context, c *Client, path string) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for path != "" {
			var p page[T]
			if err := c.get(ctx, path, &p); err != nil {
				yield(nil, err)
				return
			}
			for i := range p.Values {
				if !yield(&p.Values[i], nil) {
					return
				}
			}
			path = p.Next
		}
	}
}
