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

// DocumentFilter narrows a document listing. Zero values mean
// "no constraint".
type DocumentFilter struct {
	// CorrespondentID limits results to documents owned by this
	// correspondent.
	CorrespondentID int

	// CreatedFrom/CreatedTo bound the document creation date,
	// inclusive, in YYYY-MM-DD form.
	CreatedFrom string
	CreatedTo   string
}

func (f DocumentFilter) values() url.Values {
	params := url.Values{}
	if f.CorrespondentID > 0 {
		params.Set("correspondent__id__in", fmt.Sprintf("%d", f.CorrespondentID))
	}
	if f.CreatedFrom != "" {
		params.Set("created__date__gte", f.CreatedFrom)
	}
	if f.CreatedTo != "" {
		params.Set("created__date__lte", f.CreatedTo)
	}
	return params
}

// Documents returns a lazy sequence over documents matching the filter,
// with the same pagination contract as Correspondents: finite,
// restartable, fetched page by page in server order.
func (c *Client) Documents(ctx context.Context, filter DocumentFilter) iter.Seq2[types.Document, error] {
	first := c.listURL("/api/documents/", filter.values())
	return func(yield func(types.Document, error) bool) {
		next := first
		for next != "" {
			var pg page[types.Document]
			if err := c.do(ctx, http.MethodGet, next, nil, &pg); err != nil {
				yield(types.Document{}, fmt.Errorf("listing documents: %w", err))
				return
			}
			for _, doc := range pg.Results {
				if !yield(doc, nil) {
					return
				}
			}
			next = pg.Next
		}
	}
}

// ListDocuments collects the full document sequence for a filter.
func (c *Client) ListDocuments(ctx context.Context, filter DocumentFilter) ([]types.Document, error) {
	var out []types.Document
	for doc, err := range c.Documents(ctx, filter) {
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// GetDocument fetches a single document by id.
func (c *Client) GetDocument(ctx context.Context, id int) (types.Document, error) {
	var doc types.Document
	u := fmt.Sprintf("%s/api/documents/%d/", c.baseURL, id)
	if err := c.do(ctx, http.MethodGet, u, nil, &doc); err != nil {
		return types.Document{}, fmt.Errorf("fetching document %d: %w", id, err)
	}
	return doc, nil
}

// SetDocumentCorrespondent reassigns one document to a correspondent via
// a PATCH on the document resource.
func (c *Client) SetDocumentCorrespondent(ctx context.Context, docID, correspondentID int) error {
	u := fmt.Sprintf("%s/api/documents/%d/", c.baseURL, docID)
	body := map[string]int{"correspondent": correspondentID}
	if err := c.do(ctx, http.MethodPatch, u, body, nil); err != nil {
		return fmt.Errorf("reassigning document %d: %w", docID, err)
	}
	return nil
}

// BulkSetCorrespondent reassigns a batch of documents in one bulk-edit
// call. Callers chunk the id list to keep request sizes bounded.
func (c *Client) BulkSetCorrespondent(ctx context.Context, docIDs []int, correspondentID int) error {
	if len(docIDs) == 0 {
		return nil
	}
	u := c.baseURL + "/api/documents/bulk_edit/"
	body := map[string]any{
		"documents":  docIDs,
		"method":     "set_correspondent",
		"parameters": map[string]int{"correspondent": correspondentID},
	}
	if err := c.do(ctx, http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("bulk reassigning %d documents: %w", len(docIDs), err)
	}
	return nil
}
