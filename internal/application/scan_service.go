package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/armshift/armshift/internal/domain"
)

// ScanService orchestrates the scan pipeline:
// load config → walk the tree → attach git context.
type ScanService struct {
	configLoader domain.ConfigLoader
	scanner      domain.TreeScanner
	git          domain.GitInspector
}

func NewScanService(
	configLoader domain.ConfigLoader,
	scanner domain.TreeScanner,
	git domain.GitInspector,
) *ScanService {
	return &ScanService{
		configLoader: configLoader,
		scanner:      scanner,
		git:          git,
	}
}

func (s *ScanService) Scan(ctx context.Context, root string) (*domain.ScanReport, error) {
	// 1. Load config
	cfg, err := s.configLoader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 2. Walk the tree
	report, err := s.scanner.Scan(ctx, root, cfg)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	// 3. Attach git context; a root outside any repository stays nil
	gitCtx, err := s.git.Context(root)
	if err != nil {
		return nil, fmt.Errorf("reading git context: %w", err)
	}
	report.Git = gitCtx

	return report, nil
}

// RenderJSON renders the scan report as indented JSON.
func (s *ScanService) RenderJSON(report *domain.ScanReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
