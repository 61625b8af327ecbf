// Package output renders linecount results.
//
// The report always ends with two lines, the total and the elapsed time.
// A per-file table can be rendered above them.
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/otuschhoff/linecount/pkg/count"
)

// Formatter renders results as text.
type Formatter struct {
	perFile  bool // Render the per-file table
	noHeader bool // Omit header row in table output
}

// NewFormatter creates a new Formatter.
func NewFormatter(perFile, noHeader bool) *Formatter {
	return &Formatter{
		perFile:  perFile,
		noHeader: noHeader,
	}
}

// Format converts results and the elapsed wall-clock time to the report text.
func (f *Formatter) Format(results *count.Results, elapsed time.Duration) string {
	var sb strings.Builder

	if f.perFile {
		sb.WriteString(f.perFileTable(results))
	}

	fmt.Fprintf(&sb, "Total lines: %d\n", results.Total)
	fmt.Fprintf(&sb, "Time taken: %s\n", elapsed)
	return sb.String()
}

// perFileTable creates a table of per-file counts sorted by path.
func (f *Formatter) perFileTable(results *count.Results) string {
	t := table.NewWriter()

	if !f.noHeader {
		t.AppendHeader(table.Row{"Path", "Size", "Lines"})
	}

	files := make([]count.FileInfo, len(results.Files))
	copy(files, results.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	for _, fi := range files {
		t.AppendRow(table.Row{fi.Path, formatBytes(fi.Size), fi.Lines})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d counted, %d skipped, %d failed", results.Counted, results.Skipped, results.Failed),
		"",
		results.Total,
	})

	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	return fmt.Sprintf("%s\n", t.Render())
}

// formatBytes formats bytes to a human-readable string with binary unit suffixes.
// Examples: "512 B", "1.5 KB", "2.3 MB"
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
