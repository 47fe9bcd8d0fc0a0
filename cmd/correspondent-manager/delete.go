// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a single correspondent",
	Long: `Delete removes one correspondent by id. Its documents keep existing but
lose their correspondent assignment, so merge first if the documents
should move somewhere.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		return m.Delete(cmd.Context(), ids[0])
	},
}

var deleteEmptyCmd = &cobra.Command{
	Use:   "delete-empty",
	Short: "Delete empty correspondents, confirming each one",
	Long: `Delete-empty lists correspondents with no documents and deletes them
one by one, asking for confirmation before each deletion. Correspondents
that own documents are never touched.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeleteEmpty(cmd, true)
	},
}

var deleteEmptyBatchCmd = &cobra.Command{
	Use:   "delete-empty-batch",
	Short: "Delete empty correspondents after a single confirmation",
	Long: `Delete-empty-batch lists correspondents with no documents and deletes
them all after one confirmation covering the whole batch.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeleteEmpty(cmd, false)
	},
}

func runDeleteEmpty(cmd *cobra.Command, confirmEach bool) error {
	m, err := newManager(cmd)
	if err != nil {
		return err
	}
	report, err := m.DeleteEmpty(cmd.Context(), confirmEach)
	if err != nil {
		return err
	}
	if report.AllFailed() {
		return fmt.Errorf("all %d deletions failed", len(report.Failures))
	}
	if len(report.Failures) > 0 {
		warnColor.Fprintf(cmd.ErrOrStderr(), "warning: %d correspondents could not be deleted\n", len(report.Failures))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(deleteEmptyCmd)
	rootCmd.AddCommand(deleteEmptyBatchCmd)
}
