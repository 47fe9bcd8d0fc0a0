// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manage

import (
	"context"
	"fmt"

	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// Delete removes a single correspondent. A missing id surfaces as the
// client's not-found error.
func (m *Manager) Delete(ctx context.Context, id int) error {
	if err := m.api.DeleteCorrespondent(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Deleted correspondent %d\n", id)
	return nil
}

// EmptyCorrespondents returns the correspondents with zero attributed
// documents, in listing order.
func (m *Manager) EmptyCorrespondents(ctx context.Context) ([]types.Correspondent, error) {
	all, err := m.api.ListCorrespondents(ctx)
	if err != nil {
		return nil, err
	}
	var empty []types.Correspondent
	for _, c := range all {
		if c.DocumentCount == 0 {
			empty = append(empty, c)
		}
	}
	return empty, nil
}

// DeleteEmpty removes correspondents that have no documents. With
// confirmEach, every deletion is gated individually; otherwise a single
// confirmation covers the whole batch. Per-item delete failures are
// recorded and the sweep continues. Non-empty correspondents are never
// touched.
func (m *Manager) DeleteEmpty(ctx context.Context, confirmEach bool) (DeleteReport, error) {
	empty, err := m.EmptyCorrespondents(ctx)
	if err != nil {
		return DeleteReport{}, err
	}

	report := DeleteReport{Candidates: len(empty)}
	if len(empty) == 0 {
		fmt.Fprintln(m.out, "No empty correspondents found.")
		return report, nil
	}

	fmt.Fprintf(m.out, "Found %d correspondents with no documents:\n", len(empty))
	for _, c := range empty {
		fmt.Fprintf(m.out, "  ID: %4d | Name: %q\n", c.ID, c.Name)
	}

	if !confirmEach {
		if !m.confirm(fmt.Sprintf("Delete all %d empty correspondents?", len(empty))) {
			fmt.Fprintln(m.out, "Deletion cancelled.")
			report.Cancelled = true
			return report, nil
		}
	}

	for _, c := range empty {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if confirmEach && !m.confirm(fmt.Sprintf("Delete %q (ID %d)?", c.Name, c.ID)) {
			report.Skipped++
			continue
		}
		if err := m.api.DeleteCorrespondent(ctx, c.ID); err != nil {
			fmt.Fprintf(m.out, "warning: could not delete correspondent %d: %v\n", c.ID, err)
			report.Failures = append(report.Failures, DeleteFailure{CorrespondentID: c.ID, Reason: err.Error()})
			continue
		}
		report.Deleted++
	}

	fmt.Fprintf(m.out, "Deleted %d of %d empty correspondents.\n", report.Deleted, report.Candidates)
	return report, nil
}
