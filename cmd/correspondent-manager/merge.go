// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/correspondent-manager/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge TARGET SOURCE...",
	Short: "Merge source correspondents into a target",
	Long: `Merge reassigns every document of the source correspondents to the
target correspondent. The sources themselves are not deleted; run
delete-empty afterwards to remove them once they own nothing.

A document that fails to move is reported and the merge continues;
already moved documents stay moved.`,
	Args: usageArgs(cobra.MinimumNArgs(2)),
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	m, err := newManager(cmd)
	if err != nil {
		return err
	}
	report, err := m.Merge(cmd.Context(), ids[0], ids[1:])
	if err != nil {
		return err
	}
	return reportMergeOutcome(report)
}

var mergeGroupCmd = &cobra.Command{
	Use:   "merge-group ID...",
	Short: "Merge a group of correspondents into its first member",
	Long: `Merge-group merges every listed correspondent into the first one, the
same way merge does. Convenient for pasting a group printed by
find-duplicates or find-similar.`,
	Args: usageArgs(cobra.MinimumNArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		report, err := m.MergeGroup(cmd.Context(), ids)
		if err != nil {
			return err
		}
		return reportMergeOutcome(report)
	},
}

var mergeThresholdCmd = &cobra.Command{
	Use:   "merge-threshold THRESHOLD",
	Short: "Merge all similarity groups at or above a threshold",
	Long: `Merge-threshold finds groups of similarly named correspondents, asks
for confirmation per group, merges each group into its first member,
and deletes sources that end up with no documents. A source that still
owns documents after a partial failure is kept.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runMergeThreshold,
}

func runMergeThreshold(cmd *cobra.Command, args []string) error {
	threshold, err := parseThreshold(args[0])
	if err != nil {
		return err
	}
	metricName, _ := cmd.Flags().GetString("metric")
	metric, err := types.ParseMetric(metricName)
	if err != nil {
		return usage("%v", err)
	}

	m, err := newManager(cmd)
	if err != nil {
		return err
	}
	report, err := m.MergeThreshold(cmd.Context(), types.SimilarityConfig{Threshold: threshold, Metric: metric})
	if err != nil {
		return err
	}
	if report.Failed > 0 && report.Reassigned == 0 {
		return fmt.Errorf("all %d document reassignments failed", report.Failed)
	}
	if report.Failed > 0 {
		warnColor.Fprintf(os.Stderr, "warning: %d documents were not reassigned\n", report.Failed)
	}
	return nil
}

func init() {
	mergeThresholdCmd.Flags().String("metric", string(types.MetricJaroWinkler), "similarity metric: jaro-winkler or levenshtein")

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(mergeGroupCmd)
	rootCmd.AddCommand(mergeThresholdCmd)
}
