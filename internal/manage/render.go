// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manage

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/correspondent-manager/internal/similarity"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// RenderCorrespondents writes a correspondent listing in the requested
// format.
func RenderCorrespondents(w io.Writer, list []types.Correspondent, format types.OutputFormat) error {
	switch format {
	case types.OutputJSON:
		return RenderJSON(w, list)
	case types.OutputYAML:
		return RenderYAML(w, list)
	}

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			strconv.Itoa(c.ID), c.Name, strconv.Itoa(c.DocumentCount), c.LastCorrespondence,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"ID", "Name", "Documents", "Last Correspondence"},
		rows,
		[]text.Align{text.AlignRight, text.AlignLeft, text.AlignRight, text.AlignLeft},
	))
	fmt.Fprintf(w, "%d correspondents\n", len(list))
	return nil
}

// RenderDocuments writes a document table. names resolves correspondent
// ids for display; unassigned documents show "-".
func RenderDocuments(w io.Writer, docs []types.Document, names map[int]string) {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		owner := "-"
		if d.Correspondent != nil {
			owner = names[*d.Correspondent]
			if owner == "" {
				owner = fmt.Sprintf("ID:%d", *d.Correspondent)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(d.ID), truncate(d.Title, 50), owner, d.Created,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"ID", "Title", "Correspondent", "Created"},
		rows,
		[]text.Align{text.AlignRight, text.AlignLeft, text.AlignLeft, text.AlignLeft},
	))
	fmt.Fprintf(w, "%d documents\n", len(docs))
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderYAML writes v as a YAML document.
func RenderYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// RenderGroups writes similarity or duplicate groups with one header
// line per group and one member line each.
func RenderGroups(w io.Writer, groups []similarity.Group, label string) {
	if len(groups) == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
		return
	}
	fmt.Fprintf(w, "Found %d groups of %s:\n", len(groups), label)
	for i, group := range groups {
		fmt.Fprintf(w, "\nGroup %d:\n", i+1)
		for _, c := range group {
			fmt.Fprintf(w, "  ID: %4d | Name: %q | Docs: %d\n", c.ID, c.Name, c.DocumentCount)
		}
	}
}

// RenderPairs writes similarity pairs sorted by score.
func RenderPairs(w io.Writer, pairs []similarity.Pair) {
	if len(pairs) == 0 {
		fmt.Fprintln(w, "No similar correspondent pairs found.")
		return
	}
	fmt.Fprintf(w, "Found %d pairs of similar correspondents:\n", len(pairs))
	for i, p := range pairs {
		fmt.Fprintf(w, "\nPair %d (similarity %.3f):\n", i+1, p.Ratio)
		fmt.Fprintf(w, "  ID: %4d | Name: %q | Docs: %d\n", p.A.ID, p.A.Name, p.A.DocumentCount)
		fmt.Fprintf(w, "  ID: %4d | Name: %q | Docs: %d\n", p.B.ID, p.B.Name, p.B.DocumentCount)
	}
}

// RenderDiagnosis writes the detailed state of one correspondent.
func RenderDiagnosis(w io.Writer, d Diagnosis) {
	fmt.Fprintln(w, "=== Correspondent Diagnosis ===")
	fmt.Fprintf(w, "ID: %d\n", d.Correspondent.ID)
	fmt.Fprintf(w, "Name: %q\n", d.Correspondent.Name)
	fmt.Fprintf(w, "Documents (listed): %d\n", d.DocumentCount)
	fmt.Fprintf(w, "Documents (server count): %d\n", d.Correspondent.DocumentCount)
	if d.Correspondent.LastCorrespondence != "" {
		fmt.Fprintf(w, "Last correspondence: %s\n", d.Correspondent.LastCorrespondence)
	}

	if len(d.Detailed) == 0 {
		return
	}
	fmt.Fprintf(w, "\nFirst %d documents:\n", len(d.Detailed))
	for i, doc := range d.Detailed {
		fmt.Fprintf(w, "%3d. ID: %5d | Title: %s\n", i+1, doc.ID, truncate(doc.Title, 60))
		fmt.Fprintf(w, "     | Created: %s\n", doc.Created)
		if doc.ArchiveSerialNumber != nil {
			fmt.Fprintf(w, "     | ASN: %d\n", *doc.ArchiveSerialNumber)
		}
	}
	if d.DocumentCount > len(d.Detailed) {
		fmt.Fprintf(w, "... and %d more documents\n", d.DocumentCount-len(d.Detailed))
	}
}

// renderTable renders headers and rows with a rounded style and per-
// column alignment.
func renderTable(headers []string, rows [][]string, aligns []text.Align) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// truncate shortens s to max characters, counting runes so multi-byte
// titles are never cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
