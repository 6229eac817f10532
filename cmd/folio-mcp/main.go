package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/folio/config"
	"github.com/use-agent/folio/controller"
	"github.com/use-agent/folio/extractor"
)

func main() {
	cfg := config.Load()

	// stdout carries the MCP protocol; logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctrl := controller.New(
		extractor.NewClient(cfg.Extractor.BaseURL, nil),
		controller.WithTimeout(cfg.Extractor.Timeout),
	)

	s := server.NewMCPServer(
		"folio",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	s.AddTool(parsePortfolioTool(), handleParsePortfolio(ctrl))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func parsePortfolioTool() mcp.Tool {
	return mcp.NewTool("parse_portfolio",
		mcp.WithDescription("Send a personal portfolio URL to the extraction service and return the structured talent profile: name, role, bio, clients and video reel."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The portfolio URL to parse"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default), 'html' or 'json'"),
			mcp.Enum("markdown", "html", "json"),
		),
		mcp.WithString("section",
			mcp.Description("Return only one part of the profile (markdown and html only)"),
			mcp.Enum("identity", "employers", "videos"),
		),
	)
}
