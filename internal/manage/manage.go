// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manage orchestrates correspondent maintenance against the
// paperless-ngx API: merging duplicate correspondents by reassigning
// their documents, deleting empty correspondents, and threshold-driven
// auto-merge built on the similarity engine. Batch operations tolerate
// partial failure: individual document or correspondent errors are
// collected into the report instead of aborting the run.
package manage

import (
	"context"
	"io"
	"iter"

	"github.com/pdiddy/correspondent-manager/internal/paperless"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// API is the slice of the paperless client the orchestrator needs.
// Tests substitute an in-memory fake.
type API interface {
	ListCorrespondents(ctx context.Context) ([]types.Correspondent, error)
	GetCorrespondent(ctx context.Context, id int) (types.Correspondent, error)
	DeleteCorrespondent(ctx context.Context, id int) error
	Documents(ctx context.Context, filter paperless.DocumentFilter) iter.Seq2[types.Document, error]
	ListDocuments(ctx context.Context, filter paperless.DocumentFilter) ([]types.Document, error)
	GetDocument(ctx context.Context, id int) (types.Document, error)
	SetDocumentCorrespondent(ctx context.Context, docID, correspondentID int) error
	BulkSetCorrespondent(ctx context.Context, docIDs []int, correspondentID int) error
}

// ConfirmFunc asks the user to approve a destructive step. It is injected
// as a capability so batch modes and tests can approve or deny without a
// terminal.
type ConfirmFunc func(prompt string) bool

const defaultBatchSize = 50

// Manager runs correspondent maintenance operations.
type Manager struct {
	api       API
	out       io.Writer
	confirm   ConfirmFunc
	batchSize int
}

// New builds a Manager. Progress lines go to out; confirm gates
// destructive steps (nil approves everything, for batch use).
func New(client API, out io.Writer, confirm ConfirmFunc) *Manager {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	if out == nil {
		out = io.Discard
	}
	return &Manager{api: client, out: out, confirm: confirm, batchSize: defaultBatchSize}
}

// SetBatchSize overrides the bulk-edit chunk size. Values below 1 keep
// the default.
func (m *Manager) SetBatchSize(n int) {
	if n > 0 {
		m.batchSize = n
	}
}

// DocumentFailure records one document that could not be reassigned.
type DocumentFailure struct {
	DocumentID int    `json:"document_id" yaml:"document_id"`
	Reason     string `json:"reason" yaml:"reason"`
}

// DeleteFailure records one correspondent that could not be deleted.
type DeleteFailure struct {
	CorrespondentID int    `json:"correspondent_id" yaml:"correspondent_id"`
	Reason          string `json:"reason" yaml:"reason"`
}

// MergeReport summarizes a merge: how many documents moved to the target
// and which ones failed. A partial failure is reported here, not raised.
type MergeReport struct {
	Target     int               `json:"target" yaml:"target"`
	Sources    []int             `json:"sources" yaml:"sources"`
	Reassigned int               `json:"reassigned" yaml:"reassigned"`
	Failed     int               `json:"failed" yaml:"failed"`
	Failures   []DocumentFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// AllFailed reports whether every attempted reassignment failed.
func (r MergeReport) AllFailed() bool {
	return r.Failed > 0 && r.Reassigned == 0
}

// DeleteReport summarizes an empty-correspondent sweep.
type DeleteReport struct {
	Candidates int             `json:"candidates" yaml:"candidates"`
	Deleted    int             `json:"deleted" yaml:"deleted"`
	Skipped    int             `json:"skipped" yaml:"skipped"`
	Cancelled  bool            `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	Failures   []DeleteFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// AllFailed reports whether every attempted deletion failed.
func (r DeleteReport) AllFailed() bool {
	return len(r.Failures) > 0 && r.Deleted == 0
}

// ThresholdReport summarizes a threshold-driven auto-merge run.
type ThresholdReport struct {
	Groups         int             `json:"groups" yaml:"groups"`
	Merged         int             `json:"merged" yaml:"merged"`
	Skipped        int             `json:"skipped" yaml:"skipped"`
	Reassigned     int             `json:"reassigned" yaml:"reassigned"`
	Failed         int             `json:"failed" yaml:"failed"`
	Deleted        int             `json:"deleted" yaml:"deleted"`
	DeleteFailures []DeleteFailure `json:"delete_failures,omitempty" yaml:"delete_failures,omitempty"`
}
