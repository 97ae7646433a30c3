package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"blockkit/cmd/blockshell/blocks"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate block files whenever they change",
	Long: "Watch the block directories and explicit block files. On every change\n" +
		"the files are reloaded and each kind is re-registered, replacing the\n" +
		"previous definition. Validation failures are logged and the rest of\n" +
		"the palette stays usable. Stop with Ctrl-C.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		dirs := resolveBlockDirs(configDir, flagBlockDirs)
		for _, f := range flagFiles {
			dirs = append(dirs, filepath.Dir(f))
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, dirs, debounce)
	},
}

// liveRegistry is the registry a watch session keeps up to date.
type liveRegistry struct {
	reg    *blocks.Registry
	logger *slog.Logger
}

// reload loads the palette from scratch and re-registers every kind into the
// live registry. Kinds that disappeared from the files stay registered; a
// registry only ever replaces definitions.
func (l *liveRegistry) reload() error {
	p, err := loadPalette(l.logger)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, p.reg.Len())
	for name, kind := range p.reg.All() {
		l.reg.Register(name, kind)
		seen[name] = true
	}
	var stale []string
	for _, name := range l.reg.Names() {
		if !seen[name] {
			stale = append(stale, name)
		}
	}
	l.logger.Info("palette reloaded",
		"kinds", p.reg.Len(),
		"skipped", len(p.report.Skipped),
		"stale", strings.Join(stale, ","))
	for name, err := range p.report.Skipped {
		l.logger.Warn("block definition invalid", "block", name, "error", err)
	}
	return nil
}

func runWatch(ctx context.Context, dirs []string, debounce time.Duration) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fsw.Close()

	watched := 0
	for _, dir := range dirs {
		n, err := addWatchesRecursive(fsw, dir)
		if err != nil {
			return err
		}
		watched += n
	}
	if watched == 0 {
		return fmt.Errorf("nothing to watch: none of %s exist", strings.Join(dirs, ", "))
	}

	live := &liveRegistry{reg: blocks.NewRegistry(blocks.DefaultCategories()).WithLogger(logger), logger: logger}
	if err := live.reload(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %d director(ies); press Ctrl-C to stop\n", watched)

	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if _, err := addWatchesRecursive(fsw, event.Name); err != nil {
						logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !isBlockFile(event.Name) {
				continue
			}
			logger.Debug("block file changed", "path", event.Name, "op", event.Op.String())
			pending = true

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false
			if err := live.reload(); err != nil {
				logger.Error("reload failed", "error", err)
			}
		}
	}
}

// addWatchesRecursive watches dir and every directory below it, skipping
// hidden ones. A missing dir is not an error.
func addWatchesRecursive(fsw *fsnotify.Watcher, dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Warn("failed to watch directory", "path", path, "error", err)
			return nil
		}
		logger.Debug("watching directory", "path", path)
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("watching %s: %w", dir, err)
	}
	return n, nil
}

func isBlockFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yml" || ext == ".yaml"
}

func init() {
	watchCmd.Flags().Duration("debounce", 200*time.Millisecond, "wait this long for further changes before reloading")
}
