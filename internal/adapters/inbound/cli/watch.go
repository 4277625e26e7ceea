package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/armshift/armshift/internal/adapters/outbound/config"
	"github.com/armshift/armshift/internal/adapters/outbound/gitinfo"
	"github.com/armshift/armshift/internal/adapters/outbound/scanner"
	"github.com/armshift/armshift/internal/adapters/outbound/tui"
	"github.com/armshift/armshift/internal/application"
	"github.com/armshift/armshift/internal/domain"
	"github.com/armshift/armshift/internal/domain/catalog"
	"github.com/armshift/armshift/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// Editor save bursts collapse into a single rescan.
const watchDebounce = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Rescan on every file change",
		Long:  "Watch the project tree and rerun the scan whenever a file changes, so the report stays current while you port code.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runWatch(cmd, absPath)
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command, root string) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	logger := logging.New("watch", verbose)
	svc := application.NewScanService(
		config.New(),
		scanner.New(catalog.Default(), logger),
		gitinfo.New(),
	)

	cfg, err := config.New().Load(root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, root, cfg); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	rescan := func() {
		report, err := svc.Scan(cmd.Context(), root)
		if err != nil {
			logger.Error("rescan failed", "error", err)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
	}
	rescan()

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if watchIgnored(root, ev.Name, cfg) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			rescan()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

func addWatchRecursive(w *fsnotify.Watcher, root string, cfg domain.ProjectConfig) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && watchIgnored(root, path, cfg) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// watchIgnored applies the scanner's ignore list to a path, extended with
// armshift's own state directory, whose plan and history writes must not
// retrigger a scan. Matching runs on the root-relative path, like the
// scanner's walk.
func watchIgnored(root, path string, cfg domain.ProjectConfig) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".armshift" || strings.HasPrefix(rel, ".armshift/") {
		return true
	}
	// A directory is matched with a trailing slash during the scanner's
	// walk; events do not say which they were, so try both forms.
	return cfg.Ignored(rel) || cfg.Ignored(rel+"/")
}
