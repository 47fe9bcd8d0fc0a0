// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manage

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"sort"

	"github.com/pdiddy/correspondent-manager/internal/paperless"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// fakeAPI is an in-memory stand-in for the paperless client.
type fakeAPI struct {
	correspondents []types.Correspondent
	documents      []types.Document

	// failDocs marks document ids whose reassignment always fails.
	failDocs map[int]bool
	// failDeletes marks correspondent ids whose deletion always fails.
	failDeletes map[int]bool

	bulkCalls  [][]int
	patchCalls []int
	deleted    []int
}

func notFound() error {
	return &paperless.APIError{StatusCode: http.StatusNotFound, Detail: "Not found."}
}

func (f *fakeAPI) ListCorrespondents(ctx context.Context) ([]types.Correspondent, error) {
	out := make([]types.Correspondent, len(f.correspondents))
	copy(out, f.correspondents)
	return out, nil
}

func (f *fakeAPI) GetCorrespondent(ctx context.Context, id int) (types.Correspondent, error) {
	for _, c := range f.correspondents {
		if c.ID == id {
			return c, nil
		}
	}
	return types.Correspondent{}, notFound()
}

func (f *fakeAPI) DeleteCorrespondent(ctx context.Context, id int) error {
	if f.failDeletes[id] {
		return fmt.Errorf("deleting correspondent %d: boom", id)
	}
	for i, c := range f.correspondents {
		if c.ID == id {
			f.correspondents = append(f.correspondents[:i], f.correspondents[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return notFound()
}

func (f *fakeAPI) matches(d types.Document, filter paperless.DocumentFilter) bool {
	if filter.CorrespondentID > 0 {
		if d.Correspondent == nil || *d.Correspondent != filter.CorrespondentID {
			return false
		}
	}
	if filter.CreatedFrom != "" && d.Created < filter.CreatedFrom {
		return false
	}
	if filter.CreatedTo != "" && d.Created > filter.CreatedTo {
		return false
	}
	return true
}

func (f *fakeAPI) Documents(ctx context.Context, filter paperless.DocumentFilter) iter.Seq2[types.Document, error] {
	return func(yield func(types.Document, error) bool) {
		for _, d := range f.documents {
			if f.matches(d, filter) && !yield(d, nil) {
				return
			}
		}
	}
}

func (f *fakeAPI) ListDocuments(ctx context.Context, filter paperless.DocumentFilter) ([]types.Document, error) {
	var out []types.Document
	for d, err := range f.Documents(ctx, filter) {
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeAPI) GetDocument(ctx context.Context, id int) (types.Document, error) {
	for _, d := range f.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return types.Document{}, notFound()
}

func (f *fakeAPI) setOwner(docID, correspondentID int) {
	for i := range f.documents {
		if f.documents[i].ID == docID {
			owner := correspondentID
			f.documents[i].Correspondent = &owner
			return
		}
	}
}

func (f *fakeAPI) SetDocumentCorrespondent(ctx context.Context, docID, correspondentID int) error {
	f.patchCalls = append(f.patchCalls, docID)
	if f.failDocs[docID] {
		return fmt.Errorf("reassigning document %d: boom", docID)
	}
	f.setOwner(docID, correspondentID)
	return nil
}

func (f *fakeAPI) BulkSetCorrespondent(ctx context.Context, docIDs []int, correspondentID int) error {
	call := make([]int, len(docIDs))
	copy(call, docIDs)
	f.bulkCalls = append(f.bulkCalls, call)
	for _, id := range docIDs {
		if f.failDocs[id] {
			return fmt.Errorf("bulk reassigning %d documents: boom", len(docIDs))
		}
	}
	for _, id := range docIDs {
		f.setOwner(id, correspondentID)
	}
	return nil
}

// docsOwnedBy returns the sorted document ids currently assigned to a
// correspondent.
func (f *fakeAPI) docsOwnedBy(id int) []int {
	var out []int
	for _, d := range f.documents {
		if d.Correspondent != nil && *d.Correspondent == id {
			out = append(out, d.ID)
		}
	}
	sort.Ints(out)
	return out
}

func owned(id int) *int { return &id }
