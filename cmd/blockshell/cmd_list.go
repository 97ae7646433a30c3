package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"blockkit/cmd/blockshell/blocks"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered block kind",
	Long: "List the block kinds in the palette with their category colour, shape\n" +
		"and named sockets. Block definitions that failed validation are listed\n" +
		"on stderr and left out of the palette.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPalette(logger)
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		if category != "" && !blocks.Category(category).Known() {
			return fmt.Errorf("%w: %q", blocks.ErrUnknownCategory, category)
		}
		printPalette(os.Stdout, p, blocks.Category(category))
		printSkipped(os.Stderr, p)
		return nil
	},
}

// paletteRows returns one row per kind, sorted by name, optionally limited to
// one category.
func paletteRows(p *palette, only blocks.Category) [][]string {
	var rows [][]string
	for _, name := range p.reg.Names() {
		k, ok := p.reg.Lookup(name)
		if !ok {
			continue
		}
		if only != "" && k.Category() != only {
			continue
		}
		rows = append(rows, []string{name, string(k.Category()), k.Colour().Hex(), shapeOf(k), socketSummary(k)})
	}
	return rows
}

func printPalette(w io.Writer, p *palette, only blocks.Category) {
	rows := paletteRows(p, only)
	if len(rows) == 0 {
		fmt.Fprintln(w, "no block kinds found")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers("BLOCK", "CATEGORY", "COLOUR", "SHAPE", "SOCKETS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 2 {
				// Swatch the colour column with the kind's own colour.
				return styleCell.Foreground(lipgloss.Color(rows[row][2]))
			}
			return styleCell
		})
	fmt.Fprintln(w, t.Render())
}

func printSkipped(w io.Writer, p *palette) {
	if len(p.report.Skipped) == 0 {
		return
	}
	names := make([]string, 0, len(p.report.Skipped))
	for name := range p.report.Skipped {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, styleWarn.Render(fmt.Sprintf("%d block definition(s) skipped:", len(names))))
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %v\n", name, p.report.Skipped[name])
	}
}

func init() {
	listCmd.Flags().StringP("category", "c", "", "only list kinds of this category (colour, texture, vector, text)")
}
