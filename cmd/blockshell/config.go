package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"blockkit/cmd/blockshell/blocks"
	"blockkit/cmd/blockshell/blocksyaml"

	"github.com/bmatcuk/doublestar/v4"
)

// appName is the single source of truth for the application name.
// Env var names and config paths are derived from it.
const appName = "blockshell"

// Env var names derived from appName.
var (
	envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"
	envBlockDirs = strings.ToUpper(appName) + "_BLOCK_DIRS"
)

//go:embed messages_en.yml
var builtinMessagesYAML []byte

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveBlockDirs returns all directories to scan for block definition files.
// Order: configDir/blocks → $<APPNAME>_BLOCK_DIRS → flagDirs
func resolveBlockDirs(configDir string, flagDirs []string) []string {
	dirs := []string{filepath.Join(configDir, "blocks")}
	dirs = append(dirs, splitColon(os.Getenv(envBlockDirs))...)
	dirs = append(dirs, flagDirs...)
	return dirs
}

// resolveBlockFiles returns every block file to load: all *.yml / *.yaml files
// under the block directories (recursively), then the explicitly given files.
// Missing directories are skipped; explicit paths are kept as-is so a typo
// surfaces at read time with a clear message.
func resolveBlockFiles(dirs, flagFiles []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		found, err := globYAML(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return append(files, flagFiles...), nil
}

// globYAML returns sorted *.yml / *.yaml files anywhere below dir.
// Returns nil without error if dir does not exist.
func globYAML(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.{yml,yaml}", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning directory %s: %w", dir, err)
	}
	sort.Strings(matches)
	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return files, nil
}

// splitColon splits a colon-separated string, filtering empty parts.
func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// palette is everything loaded at startup: the registry and the merged
// message table used to build it.
type palette struct {
	reg      *blocks.Registry
	messages blocksyaml.Messages
	files    []string
	report   blocksyaml.Report
}

// loadPalette builds a fresh registry from the built-in colour blocks and
// every block file. Files are parsed first so their category colours and
// messages apply to the built-ins too; file definitions then override
// built-ins of the same name.
func loadPalette(logger *slog.Logger) (*palette, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	files, err := resolveBlockFiles(resolveBlockDirs(configDir, flagBlockDirs), flagFiles)
	if err != nil {
		return nil, err
	}
	return loadPaletteFiles(logger, files)
}

func loadPaletteFiles(logger *slog.Logger, files []string) (*palette, error) {
	builtin, err := blocksyaml.Parse(builtinMessagesYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in messages: %w", err)
	}
	docs := []blocksyaml.Document{builtin}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("block file %s: %w", f, err)
		}
		doc, err := blocksyaml.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("block file %s: %w", f, err)
		}
		docs = append(docs, doc)
	}

	cats := blocks.DefaultCategories()
	if err := blocksyaml.ApplyCategories(cats, docs...); err != nil {
		return nil, err
	}
	reg := blocks.NewRegistry(cats).WithLogger(logger)
	msgs := blocksyaml.MergeMessages(docs...)

	if !flagNoBuiltin {
		if err := blocks.DefineColourBlocks(reg, msgs); err != nil {
			return nil, fmt.Errorf("built-in blocks: %w", err)
		}
	}
	report := blocksyaml.Define(reg, msgs, logger, docs...)
	logger.Debug("palette loaded", "files", len(files), "kinds", reg.Len(), "skipped", len(report.Skipped))

	return &palette{reg: reg, messages: msgs, files: files, report: report}, nil
}

// lookupKind resolves a kind name, turning a miss into an error listing the
// available kinds.
func (p *palette) lookupKind(name string) (*blocks.BlockKind, error) {
	kind, ok := p.reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q\navailable: %s", blocks.ErrNotFound, name, strings.Join(p.reg.Names(), ", "))
	}
	return kind, nil
}
