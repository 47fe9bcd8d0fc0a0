// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paperless

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"

	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// Correspondents returns a lazy sequence over all correspondents,
// fetching pages on demand and following the server's next links. The
// sequence is finite and restartable: ranging over it again re-fetches
// from page one. A fetch failure yields a single non-nil error and ends
// the sequence.
func (c *Client) Correspondents(ctx context.Context) iter.Seq2[types.Correspondent, error] {
	first := c.listURL("/api/correspondents/", url.Values{})
	return func(yield func(types.Correspondent, error) bool) {
		next := first
		for next != "" {
			var pg page[types.Correspondent]
			if err := c.do(ctx, http.MethodGet, next, nil, &pg); err != nil {
				yield(types.Correspondent{}, fmt.Errorf("listing correspondents: %w", err))
				return
			}
			for _, corr := range pg.Results {
				if !yield(corr, nil) {
					return
				}
			}
			next = pg.Next
		}
	}
}

// ListCorrespondents collects the full correspondent sequence.
func (c *Client) ListCorrespondents(ctx context.Context) ([]types.Correspondent, error) {
	var out []types.Correspondent
	for corr, err := range c.Correspondents(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, corr)
	}
	return out, nil
}

// GetCorrespondent fetches a single correspondent by id. A missing id
// surfaces as a not-found *APIError.
func (c *Client) GetCorrespondent(ctx context.Context, id int) (types.Correspondent, error) {
	var corr types.Correspondent
	u := fmt.Sprintf("%s/api/correspondents/%d/", c.baseURL, id)
	if err := c.do(ctx, http.MethodGet, u, nil, &corr); err != nil {
		return types.Correspondent{}, fmt.Errorf("fetching correspondent %d: %w", id, err)
	}
	return corr, nil
}

// DeleteCorrespondent removes a correspondent. Deleting a nonexistent id
// surfaces as a not-found *APIError.
func (c *Client) DeleteCorrespondent(ctx context.Context, id int) error {
	u := fmt.Sprintf("%s/api/correspondents/%d/", c.baseURL, id)
	if err := c.do(ctx, http.MethodDelete, u, nil, nil); err != nil {
		return fmt.Errorf("deleting correspondent %d: %w", id, err)
	}
	return nil
}

// listURL builds a paginated endpoint URL with extra query parameters.
func (c *Client) listURL(path string, params url.Values) string {
	params.Set("page_size", fmt.Sprintf("%d", c.pageSize))
	params.Set("ordering", "id")
	return c.baseURL + path + "?" + params.Encode()
}
