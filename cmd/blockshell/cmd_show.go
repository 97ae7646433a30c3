package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [block]",
	Short: "Describe a block kind",
	Long: "Print the shape, category, tooltip and sockets of a block kind.\n" +
		"Without an argument a fuzzy finder opens over the palette.",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeBlockNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPalette(logger)
		if err != nil {
			return err
		}
		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			name, err = pickKind(p)
			if err != nil {
				return err
			}
		}
		kind, err := p.lookupKind(name)
		if err != nil {
			return err
		}
		describeKind(os.Stdout, kind)
		return nil
	},
}

// pickKind lets the user choose a kind interactively, previewing each
// candidate's description.
func pickKind(p *palette) (string, error) {
	names := p.reg.Names()
	if len(names) == 0 {
		return "", errors.New("no block kinds loaded")
	}
	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPromptString("Select block: "),
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i < 0 {
				return ""
			}
			k, ok := p.reg.Lookup(names[i])
			if !ok {
				return ""
			}
			var buf bytes.Buffer
			describeKind(&buf, k)
			return buf.String()
		}),
	)
	if err != nil {
		return "", fmt.Errorf("selecting block: %w", err)
	}
	return names[idx], nil
}
