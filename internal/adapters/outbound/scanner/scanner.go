// Package scanner implements the tree-walking project scanner: source
// files go through the pattern catalog, build manifests are recorded, and
// root-level dependency manifests are parsed into dependency records.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/armshift/armshift/internal/domain"
	"github.com/armshift/armshift/internal/domain/catalog"
)

// buildManifests maps exact manifest names to their build-system tag.
// Extension-based manifests (*.mk, *.pro) are handled separately.
var buildManifests = map[string]string{
	"CMakeLists.txt": domain.BuildCMake,
	"Makefile":       domain.BuildMake,
	"build.gradle":   domain.BuildGradle,
	"pom.xml":        domain.BuildMaven,
	"package.json":   domain.BuildNPM,
	"Cargo.toml":     domain.BuildCargo,
	"go.mod":         domain.BuildGoModules,
}

// TreeScanner implements domain.TreeScanner by walking the filesystem.
type TreeScanner struct {
	catalog *catalog.Catalog
	logger  hclog.Logger
}

func New(cat *catalog.Catalog, logger hclog.Logger) *TreeScanner {
	return &TreeScanner{catalog: cat, logger: logger}
}

// Scan walks the tree once, collecting scannable sources and build
// manifests, then fans file scans out across a bounded worker pool. One
// unreadable file logs a warning and never aborts the walk.
func (s *TreeScanner) Scan(ctx context.Context, root string, cfg domain.ProjectConfig) (*domain.ScanReport, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	report := &domain.ScanReport{
		Root:      absRoot,
		ScannedAt: time.Now(),
	}

	var sources []string
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if cfg.Ignored(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		// Manifests are recorded before the file-level ignore check:
		// names like build.gradle collide with the "build" ignore
		// substring. Ignored directories were already pruned above.
		if system, ok := buildSystemFor(d.Name()); ok {
			report.BuildSystems = append(report.BuildSystems, domain.BuildSystemRecord{
				File:        rel,
				System:      system,
				NeedsReview: true,
			})
		}

		if cfg.Ignored(rel) {
			return nil
		}
		if cfg.ExtensionAllowed(filepath.Ext(d.Name())) {
			sources = append(sources, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.TotalFiles = len(sources)
	report.Issues, report.ScannedFiles, err = s.scanSources(ctx, absRoot, sources, cfg.Workers)
	if err != nil {
		return nil, err
	}

	report.Dependencies = s.scanDependencies(absRoot)
	report.Recommendations = recommendations(report)

	s.logger.Debug("scan completed",
		"root", absRoot,
		"scanned", report.ScannedFiles,
		"total", report.TotalFiles,
		"issues", len(report.Issues))
	return report, nil
}

// scanSources dispatches per-file scans across a worker pool. Pool size
// comes from config, defaulting to CPU count. The merged issue list is
// stable-sorted by (file, line) so output order never depends on
// completion order.
func (s *TreeScanner) scanSources(ctx context.Context, absRoot string, sources []string, workers int) ([]domain.Issue, int, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu      sync.Mutex
		issues  []domain.Issue
		scanned int
	)

	for _, rel := range sources {
		rel := rel
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(rel)))
			if err != nil {
				s.logger.Warn("skipping unreadable file", "file", rel, "error", err)
				return nil
			}
			found := catalog.ScanSource(s.catalog, rel, string(data))

			mu.Lock()
			scanned++
			issues = append(issues, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		return issues[i].Line < issues[j].Line
	})

	return issues, scanned, nil
}

func buildSystemFor(name string) (string, bool) {
	if system, ok := buildManifests[name]; ok {
		return system, true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mk":
		return domain.BuildMake, true
	case ".pro":
		return domain.BuildQMake, true
	}
	return "", false
}

// recommendations is a pure reduction over the aggregated counts into a
// short list of hints. Advisory only; plan building ignores it.
func recommendations(report *domain.ScanReport) []string {
	var recs []string

	if len(report.Issues) == 0 {
		recs = append(recs, "No obvious x86-specific code detected")
	} else {
		recs = append(recs, fmt.Sprintf("Found %d potential compatibility issues", len(report.Issues)))
		if high := report.HighSeverityCount(); high > 0 {
			recs = append(recs, fmt.Sprintf("%d high-severity issues require immediate attention", high))
		}
	}

	if report.HasBuildSystem(domain.BuildCMake) {
		recs = append(recs, "CMake detected - review CMakeLists.txt for architecture-specific settings")
	}
	if report.HasBuildSystem(domain.BuildMake) {
		recs = append(recs, "Makefile detected - review for architecture-specific compiler flags")
	}

	if n := len(report.Dependencies); n > 0 {
		recs = append(recs, fmt.Sprintf("%d dependencies found - verify ARM compatibility", n))
	}

	return recs
}
