package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Inspect and check visual-programming block palettes",
	Long: appName + " loads block kind definitions (the built-in colour blocks plus\n" +
		"YAML block files), validates them and answers questions about them:\n" +
		"which kinds exist, what a kind looks like, whether one block may plug\n" +
		"into another and which tooltip a block shows.\n\n" +
		"Block names are auto-completable via shell completion (Tab).",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := setupLogger(flagLogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// completeBlockNames completes the first positional argument with the names
// of the loaded block kinds.
func completeBlockNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeBlockArg(0)(cmd, args, toComplete)
}

// completeBlockArg returns a completion function that offers block kind names
// for every positional argument up to and including position last.
func completeBlockArg(last int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > last {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		p, err := loadPalette(slog.New(slog.DiscardHandler))
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var suggestions []string
		for _, name := range p.reg.Names() {
			if strings.HasPrefix(name, toComplete) {
				suggestions = append(suggestions, name)
			}
		}
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}
}
