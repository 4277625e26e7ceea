package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/armshift/armshift/internal/adapters/outbound/backup"
	"github.com/armshift/armshift/internal/adapters/outbound/config"
	"github.com/armshift/armshift/internal/adapters/outbound/gitinfo"
	"github.com/armshift/armshift/internal/adapters/outbound/history"
	"github.com/armshift/armshift/internal/adapters/outbound/planstore"
	"github.com/armshift/armshift/internal/adapters/outbound/scanner"
	"github.com/armshift/armshift/internal/application"
	"github.com/armshift/armshift/internal/domain"
	"github.com/armshift/armshift/internal/domain/catalog"
	"github.com/armshift/armshift/internal/logging"
)

// registerTools registers the armshift MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. scan_project
	s.AddTool(
		mcplib.NewTool("scan_project",
			mcplib.WithDescription("Scan the project for architecture-specific code and return the full compatibility report as JSON"),
		),
		handleScanProject(projectPath),
	)

	// 2. build_migration_plan
	s.AddTool(
		mcplib.NewTool("build_migration_plan",
			mcplib.WithDescription("Scan the project and build an ordered ARM migration plan. The plan is stored for a later execute_migration call."),
			mcplib.WithString("target_architecture",
				mcplib.Description("Target architecture, arm64 or arm (default: the configured one)"),
			),
		),
		handleBuildPlan(projectPath),
	)

	// 3. execute_migration
	s.AddTool(
		mcplib.NewTool("execute_migration",
			mcplib.WithDescription("Execute the stored migration plan. By default only simulates; set apply to true to back up the tree and rewrite high-confidence lines."),
			mcplib.WithBoolean("apply",
				mcplib.Description("Apply changes to files instead of simulating (default: false)"),
			),
		),
		handleExecuteMigration(projectPath),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices() (*application.ScanService, *application.PlanService, *application.MigrateService) {
	logger := logging.New("mcp", false)

	scanSvc := application.NewScanService(
		config.New(),
		scanner.New(catalog.Default(), logger),
		gitinfo.New(),
	)
	planSvc := application.NewPlanService(config.New(), scanSvc, planstore.New())
	migrateSvc := application.NewMigrateService(
		planSvc,
		application.NewExecutor(backup.New(logger), logger),
		planstore.New(),
		history.New(),
		gitinfo.New(),
		logger,
	)
	return scanSvc, planSvc, migrateSvc
}

func handleScanProject(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		scanSvc, _, _ := newServices()
		report, err := scanSvc.Scan(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleBuildPlan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		target, _ := request.GetArguments()["target_architecture"].(string)

		_, planSvc, _ := newServices()
		plan, err := planSvc.BuildPlan(ctx, projectPath, target)
		if err != nil {
			return errorResult(fmt.Sprintf("planning failed: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

func handleExecuteMigration(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		apply, _ := request.GetArguments()["apply"].(bool)
		mode := domain.ModeSimulate
		if apply {
			mode = domain.ModeApply
		}

		_, _, migrateSvc := newServices()
		result, err := migrateSvc.Run(ctx, projectPath, mode)
		if err != nil {
			return errorResult(fmt.Sprintf("migration failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
