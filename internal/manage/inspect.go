// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manage

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/correspondent-manager/internal/paperless"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// diagnoseDetailLimit caps per-document detail fetches in a diagnosis.
const diagnoseDetailLimit = 10

// recentDocsLimit caps the number of documents returned by
// RecentDocuments, to keep output readable on large instances.
const recentDocsLimit = 100

// Diagnosis is the detailed state of one correspondent.
type Diagnosis struct {
	Correspondent types.Correspondent `json:"correspondent" yaml:"correspondent"`

	// DocumentCount is counted from the actual document listing, which
	// can disagree with the server-side cached count.
	DocumentCount int `json:"document_count" yaml:"document_count"`

	Documents []types.Document `json:"documents" yaml:"documents"`

	// Detailed holds full records for the first few documents.
	Detailed []types.Document `json:"detailed" yaml:"detailed"`
}

// Diagnose fetches a correspondent, its document listing, and full
// detail for the first few documents. Detail fetch failures degrade to
// the listing record with a warning.
func (m *Manager) Diagnose(ctx context.Context, id int) (Diagnosis, error) {
	corr, err := m.api.GetCorrespondent(ctx, id)
	if err != nil {
		return Diagnosis{}, err
	}

	docs, err := m.api.ListDocuments(ctx, paperless.DocumentFilter{CorrespondentID: id})
	if err != nil {
		return Diagnosis{}, err
	}

	d := Diagnosis{Correspondent: corr, DocumentCount: len(docs), Documents: docs}
	for i, doc := range docs {
		if i >= diagnoseDetailLimit {
			break
		}
		detailed, err := m.api.GetDocument(ctx, doc.ID)
		if err != nil {
			fmt.Fprintf(m.out, "warning: could not fetch document %d: %v\n", doc.ID, err)
			detailed = doc
		}
		d.Detailed = append(d.Detailed, detailed)
	}
	return d, nil
}

// RestoreDocuments reassigns the given documents to a correspondent,
// e.g. after an over-eager merge. It uses smaller batches than Merge
// since restore lists are typically hand-picked.
func (m *Manager) RestoreDocuments(ctx context.Context, docIDs []int, targetID int) (MergeReport, error) {
	report := MergeReport{Target: targetID}
	if len(docIDs) == 0 {
		fmt.Fprintln(m.out, "No documents to restore.")
		return report, nil
	}

	fmt.Fprintf(m.out, "Restoring %d documents to correspondent %d...\n", len(docIDs), targetID)
	moved, failures := m.reassign(ctx, docIDs, targetID, m.batchSize/2)
	report.Reassigned = moved
	report.Failures = failures
	report.Failed = len(failures)
	fmt.Fprintf(m.out, "Restore summary: %d reassigned, %d failed\n", report.Reassigned, report.Failed)
	return report, ctx.Err()
}

// RecentDocuments returns documents created in the last N days, capped
// at recentDocsLimit. The cap is applied while paginating so no more
// pages are fetched than needed.
func (m *Manager) RecentDocuments(ctx context.Context, days int) ([]types.Document, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	filter := paperless.DocumentFilter{
		CreatedFrom: now.AddDate(0, 0, -days).Format("2006-01-02"),
		CreatedTo:   now.Format("2006-01-02"),
	}

	var docs []types.Document
	for doc, err := range m.api.Documents(ctx, filter) {
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		if len(docs) >= recentDocsLimit {
			break
		}
	}
	return docs, nil
}
