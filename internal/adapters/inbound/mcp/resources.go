package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/armshift/armshift/internal/adapters/outbound/history"
	"github.com/armshift/armshift/internal/domain"
	"github.com/armshift/armshift/internal/domain/catalog"
)

// registerResources registers the armshift MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. armshift://patterns - the detection catalog
	s.AddResource(
		mcplib.NewResource(
			"armshift://patterns",
			"Detection Patterns",
			mcplib.WithResourceDescription("The catalog of patterns armshift scans for, by category"),
			mcplib.WithMIMEType("application/json"),
		),
		handlePatternsResource(),
	)

	// 2. armshift://history - past migration runs
	s.AddResource(
		mcplib.NewResource(
			"armshift://history",
			"Migration History",
			mcplib.WithResourceDescription("Summaries of past migration runs for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)
}

// patternRule is the serializable view of one catalog rule.
type patternRule struct {
	Category   domain.Category `json:"category"`
	Severity   domain.Severity `json:"severity"`
	Patterns   []string        `json:"patterns"`
	Suggestion string          `json:"suggestion"`
}

func handlePatternsResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		var rules []patternRule
		for _, r := range catalog.Default().Rules() {
			pr := patternRule{
				Category:   r.Category,
				Severity:   domain.SeverityFor(r.Category),
				Suggestion: r.Suggestion,
			}
			for _, re := range r.Patterns {
				pr.Patterns = append(pr.Patterns, re.String())
			}
			rules = append(rules, pr)
		}

		data, err := json.MarshalIndent(rules, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling patterns: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "armshift://patterns",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "armshift://history",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
