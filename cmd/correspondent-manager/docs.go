// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/correspondent-manager/internal/manage"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose ID",
	Short: "Show the detailed state of one correspondent",
	Long: `Diagnose fetches a correspondent, lists its documents, and prints full
detail for the first few. The listed count is computed from the actual
documents, so it exposes a stale server-side document_count.`,
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
		d, err := m.Diagnose(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		manage.RenderDiagnosis(os.Stdout, d)
		return nil
	},
}

var restoreDocsCmd = &cobra.Command{
	Use:   "restore-docs DOC_ID... --to-correspondent ID",
	Short: "Reassign specific documents to a correspondent",
	Long: `Restore-docs moves the given documents to a correspondent, e.g. to undo
part of a merge that went too far. Document ids are positional, the
destination is --to-correspondent.`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: runRestoreDocs,
}

func runRestoreDocs(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetInt("to-correspondent")
	if target <= 0 {
		return usage("provide the destination with --to-correspondent ID")
	}
	docIDs, err := parseIDs(args)
	if err != nil {
		return err
	}

	m, err := newManager(cmd)
	if err != nil {
		return err
	}
	report, err := m.RestoreDocuments(cmd.Context(), docIDs, target)
	if err != nil {
		return err
	}
	return reportMergeOutcome(report)
}

var findRecentDocsCmd = &cobra.Command{
	Use:   "find-recent-docs",
	Short: "List documents created in the last N days",
	Long: `Find-recent-docs lists recently created documents with their current
correspondent, to check what a merge or import just touched.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runFindRecentDocs,
}

func runFindRecentDocs(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	if days < 0 {
		return usage("invalid --days %d: want a positive number", days)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	m := manage.New(client, os.Stdout, nil)
	docs, err := m.RecentDocuments(cmd.Context(), days)
	if err != nil {
		return err
	}

	names := make(map[int]string)
	correspondents, err := client.ListCorrespondents(cmd.Context())
	if err == nil {
		for _, c := range correspondents {
			names[c.ID] = c.Name
		}
	} else {
		warnColor.Fprintf(os.Stderr, "warning: could not resolve correspondent names: %v\n", err)
	}
	manage.RenderDocuments(os.Stdout, docs, names)
	return nil
}

func init() {
	restoreDocsCmd.Flags().Int("to-correspondent", 0, "destination correspondent id")
	findRecentDocsCmd.Flags().Int("days", 7, "how many days back to look")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(restoreDocsCmd)
	rootCmd.AddCommand(findRecentDocsCmd)
}
