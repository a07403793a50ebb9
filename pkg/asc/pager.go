package asc

import (
	"context"
	"net/http"
	"net/url"
)

// pagedLinks is the vendor's pagination link object. A missing or null
// next link is the sole termination signal.
type pagedLinks struct {
	Self string  `json:"self"`
	Next *string `json:"next"`
}

// collectionDocument is the vendor envelope for list endpoints.
type collectionDocument[T any] struct {
	Data  []T        `json:"data"`
	Links pagedLinks `json:"links"`
}

// document is the vendor envelope for single-resource endpoints.
type document[T any] struct {
	Data T `json:"data"`
}

// Pager lazily walks a paginated collection. No network I/O happens until
// the first Next call; each page is fetched exactly once, in vendor link
// order. Any executor error ends the iteration and is returned to the
// caller; the pager never shortens a sequence silently.
//
// A Pager is not safe for concurrent use. Restart rewinds to the first
// page; a restarted pager replays the same logical sequence as long as the
// backing data is unchanged.
type Pager[T any] struct {
	client *Client
	path   string
	query  url.Values

	started bool
	next    string
	buf     []T
	idx     int
}

func newPager[T any](client *Client, path string, query url.Values) *Pager[T] {
	return &Pager[T]{
		client: client,
		path:   path,
		query:  query,
	}
}

// Next returns the next item in the collection. The second return value is
// false once the collection is exhausted.
func (p *Pager[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for p.idx >= len(p.buf) {
		if p.started && p.next == "" {
			return zero, false, nil
		}
		if err := p.fetch(ctx); err != nil {
			return zero, false, err
		}
	}

	item := p.buf[p.idx]
	p.idx++
	return item, true, nil
}

// All drains the remaining pages into a slice.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	for {
		item, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

// Restart rewinds the pager to the first page.
func (p *Pager[T]) Restart() {
	p.started = false
	p.next = ""
	p.buf = nil
	p.idx = 0
}

func (p *Pager[T]) fetch(ctx context.Context) error {
	req := &request{
		method:     http.MethodGet,
		idempotent: true,
	}
	if !p.started {
		req.path = p.path
		req.query = p.query
	} else {
		req.url = p.next
	}

	var doc collectionDocument[T]
	if err := p.client.do(ctx, req, &doc); err != nil {
		return err
	}

	p.started = true
	p.buf = doc.Data
	p.idx = 0
	if doc.Links.Next != nil && *doc.Links.Next != "" {
		p.next = *doc.Links.Next
	} else {
		p.next = ""
	}
	return nil
}
