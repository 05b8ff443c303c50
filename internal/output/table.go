package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorBorder = lipgloss.Color("#30363d")
	colorHeader = lipgloss.Color("#58a6ff")
	colorMuted  = lipgloss.Color("#8b949e")

	headerStyle = lipgloss.NewStyle().Foreground(colorHeader).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	metaStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// Tabular is implemented by results that have a table rendering.
type Tabular interface {
	Table() (headers []string, rows [][]string)
}

// RenderTable draws rows under headers with a rounded border.
func RenderTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// renderMeta prints meta as one dim "key: value" line in key order.
func renderMeta(w io.Writer, meta map[string]any) error {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, meta[k])
	}
	_, err := fmt.Fprintln(w, metaStyle.Render(strings.Join(parts, "  ")))
	return err
}
