// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/correspondent-manager/internal/manage"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all correspondents",
	Long: `List fetches every correspondent from the server, following
pagination, and prints them as a table, JSON, or YAML.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runList,
}

func init() {
	listCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := types.ParseOutputFormat(formatName)
	if err != nil {
		return usage("%v", err)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	correspondents, err := client.ListCorrespondents(cmd.Context())
	if err != nil {
		return err
	}
	return manage.RenderCorrespondents(os.Stdout, correspondents, format)
}
