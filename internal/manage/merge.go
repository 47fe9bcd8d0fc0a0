// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manage

import (
	"context"
	"fmt"

	"github.com/pdiddy/correspondent-manager/internal/paperless"
	"github.com/pdiddy/correspondent-manager/internal/similarity"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// Merge reassigns every document owned by the source correspondents to
// the target. Documents are collected up front (mutating while paginating
// would shift pages), then reassigned in bounded batches. A failed
// document is recorded and the batch continues; only a listing error or
// cancellation aborts the run. Already-applied reassignments stay applied.
func (m *Manager) Merge(ctx context.Context, targetID int, sourceIDs []int) (MergeReport, error) {
	report := MergeReport{Target: targetID, Sources: sourceIDs}

	for _, src := range sourceIDs {
		if err := ctx.Err(); err != nil {
			report.Failed = len(report.Failures)
			return report, err
		}
		if src == targetID {
			fmt.Fprintf(m.out, "warning: skipping source %d: same as target\n", src)
			continue
		}

		docs, err := m.api.ListDocuments(ctx, paperless.DocumentFilter{CorrespondentID: src})
		if err != nil {
			report.Failed = len(report.Failures)
			return report, fmt.Errorf("listing documents of correspondent %d: %w", src, err)
		}
		if len(docs) == 0 {
			fmt.Fprintf(m.out, "No documents found for correspondent %d\n", src)
			continue
		}

		ids := make([]int, len(docs))
		for i, d := range docs {
			ids[i] = d.ID
		}

		fmt.Fprintf(m.out, "Merging %d documents from correspondent %d into %d...\n", len(ids), src, targetID)
		moved, failures := m.reassign(ctx, ids, targetID, m.batchSize)
		report.Reassigned += moved
		report.Failures = append(report.Failures, failures...)
	}

	report.Failed = len(report.Failures)
	fmt.Fprintf(m.out, "Merge summary: %d reassigned, %d failed\n", report.Reassigned, report.Failed)
	return report, nil
}

// MergeGroup merges a group of correspondents: the first id is the
// target, the rest are sources.
func (m *Manager) MergeGroup(ctx context.Context, ids []int) (MergeReport, error) {
	if len(ids) < 2 {
		return MergeReport{}, fmt.Errorf("merge group needs at least 2 correspondent ids, got %d", len(ids))
	}
	return m.Merge(ctx, ids[0], ids[1:])
}

// reassign moves documents to targetID in chunks of batchSize via the
// bulk-edit endpoint. When a chunk fails it falls back to per-document
// updates so one bad document cannot sink its whole chunk.
func (m *Manager) reassign(ctx context.Context, docIDs []int, targetID, batchSize int) (int, []DocumentFailure) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	moved := 0
	var failures []DocumentFailure
	for start := 0; start < len(docIDs); start += batchSize {
		if ctx.Err() != nil {
			return moved, failures
		}
		end := start + batchSize
		if end > len(docIDs) {
			end = len(docIDs)
		}
		chunk := docIDs[start:end]

		if err := m.api.BulkSetCorrespondent(ctx, chunk, targetID); err == nil {
			moved += len(chunk)
			continue
		}

		for _, id := range chunk {
			if ctx.Err() != nil {
				return moved, failures
			}
			if err := m.api.SetDocumentCorrespondent(ctx, id, targetID); err != nil {
				fmt.Fprintf(m.out, "warning: document %d not reassigned: %v\n", id, err)
				failures = append(failures, DocumentFailure{DocumentID: id, Reason: err.Error()})
				continue
			}
			moved++
		}
	}
	return moved, failures
}

// MergeThreshold finds similarity groups at the given threshold, merges
// each group into its first member, and deletes sources that were fully
// emptied. Each group is gated by the confirm capability. This is the
// only operation that composes the similarity engine with the merge
// machinery.
func (m *Manager) MergeThreshold(ctx context.Context, cfg types.SimilarityConfig) (ThresholdReport, error) {
	correspondents, err := m.api.ListCorrespondents(ctx)
	if err != nil {
		return ThresholdReport{}, err
	}

	groups := similarity.Groups(correspondents, cfg)
	report := ThresholdReport{Groups: len(groups)}
	if len(groups) == 0 {
		fmt.Fprintf(m.out, "No similar correspondents found at threshold %.2f.\n", cfg.Threshold)
		return report, nil
	}

	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		target := group[0]
		fmt.Fprintf(m.out, "\nGroup %d of %d:\n", i+1, len(groups))
		for _, c := range group {
			fmt.Fprintf(m.out, "  ID: %4d | Name: %q | Docs: %d\n", c.ID, c.Name, c.DocumentCount)
		}

		prompt := fmt.Sprintf("Merge %d correspondents into %q (ID %d)?", len(group)-1, target.Name, target.ID)
		if !m.confirm(prompt) {
			fmt.Fprintf(m.out, "Skipping group %d.\n", i+1)
			report.Skipped++
			continue
		}

		for _, src := range group[1:] {
			srcReport, err := m.Merge(ctx, target.ID, []int{src.ID})
			report.Reassigned += srcReport.Reassigned
			report.Failed += srcReport.Failed
			if err != nil {
				return report, err
			}
			if srcReport.Failed > 0 {
				fmt.Fprintf(m.out, "warning: keeping correspondent %d: %d documents were not moved\n", src.ID, srcReport.Failed)
				continue
			}
			if err := m.api.DeleteCorrespondent(ctx, src.ID); err != nil {
				fmt.Fprintf(m.out, "warning: could not delete correspondent %d: %v\n", src.ID, err)
				report.DeleteFailures = append(report.DeleteFailures, DeleteFailure{CorrespondentID: src.ID, Reason: err.Error()})
				continue
			}
			report.Deleted++
		}
		report.Merged++
	}

	fmt.Fprintf(m.out, "\nMerged %d of %d groups: %d documents reassigned, %d failed, %d sources deleted.\n",
		report.Merged, report.Groups, report.Reassigned, report.Failed, report.Deleted)
	return report, nil
}
