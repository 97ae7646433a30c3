package main

import (
	"fmt"
	"log/slog"
	"os"

	"blockkit/pkg/lib"
)

var (
	flagFiles     []string
	flagBlockDirs []string
	flagNoBuiltin bool
	flagLogLevel  string
)

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tooltipCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().StringArrayVarP(&flagFiles, "file", "f", nil,
		"block definition file (repeatable; default: ~/.config/"+appName+"/blocks/**/*.yml)")
	rootCmd.PersistentFlags().StringArrayVar(&flagBlockDirs, "block-dir", nil,
		"additional directory to scan for block definition files (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&flagNoBuiltin, "no-builtin", false,
		"do not register the built-in colour blocks")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn",
		"log level: debug, info, warn, error")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		lib.Exit(err)
	}
}

// setupLogger installs the process-wide logger. Logs go to stderr so command
// output on stdout stays clean for piping.
func setupLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger, nil
}
