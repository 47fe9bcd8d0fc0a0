// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/correspondent-manager/internal/manage"
	"github.com/pdiddy/correspondent-manager/internal/similarity"
)

var findDuplicatesCmd = &cobra.Command{
	Use:   "find-duplicates",
	Short: "Find correspondents with identical names",
	Long: `Find-duplicates groups correspondents whose names are identical after
case-folding and whitespace trimming. These are safe merge candidates.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		correspondents, err := client.ListCorrespondents(cmd.Context())
		if err != nil {
			return err
		}
		groups := similarity.ExactDuplicates(correspondents)
		manage.RenderGroups(os.Stdout, groups, "exact duplicates")
		return nil
	},
}

var findSimilarCmd = &cobra.Command{
	Use:   "find-similar",
	Short: "Find groups of similarly named correspondents",
	Long: `Find-similar groups correspondents whose names are similar at or above
the threshold. Similarity is transitive within a group: A~B and B~C
puts A, B, and C together even when A and C are below the threshold.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := similarityConfig(cmd)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		correspondents, err := client.ListCorrespondents(cmd.Context())
		if err != nil {
			return err
		}
		groups := similarity.Groups(correspondents, cfg)
		manage.RenderGroups(os.Stdout, groups, fmt.Sprintf("similar correspondents (threshold %.2f)", cfg.Threshold))
		return nil
	},
}

var findSimilarPairsCmd = &cobra.Command{
	Use:   "find-similar-pairs",
	Short: "Find pairs of similarly named correspondents with scores",
	Long: `Find-similar-pairs prints every pair of correspondents at or above the
similarity threshold, sorted by score, highest first. Use it to pick a
threshold before running merge-threshold.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := similarityConfig(cmd)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		correspondents, err := client.ListCorrespondents(cmd.Context())
		if err != nil {
			return err
		}
		pairs := similarity.Pairs(correspondents, cfg)
		manage.RenderPairs(os.Stdout, pairs)
		return nil
	},
}

var findEmptyCmd = &cobra.Command{
	Use:   "find-empty",
	Short: "Find correspondents with no documents",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		empty, err := m.EmptyCorrespondents(cmd.Context())
		if err != nil {
			return err
		}
		if len(empty) == 0 {
			fmt.Println("No empty correspondents found.")
			return nil
		}
		fmt.Printf("Found %d correspondents with no documents:\n", len(empty))
		for _, c := range empty {
			fmt.Printf("  ID: %4d | Name: %q\n", c.ID, c.Name)
		}
		return nil
	},
}

func init() {
	addSimilarityFlags(findSimilarCmd)
	addSimilarityFlags(findSimilarPairsCmd)

	rootCmd.AddCommand(findDuplicatesCmd)
	rootCmd.AddCommand(findSimilarCmd)
	rootCmd.AddCommand(findSimilarPairsCmd)
	rootCmd.AddCommand(findEmptyCmd)
}
