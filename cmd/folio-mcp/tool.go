package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/folio/controller"
	"github.com/use-agent/folio/models"
	"github.com/use-agent/folio/render"
)

// handleParsePortfolio submits the URL on the shared controller and waits
// for its outcome. A concurrent call for another URL supersedes this one.
func handleParsePortfolio(ctrl *controller.Controller) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		format := request.GetString("format", "markdown")
		section := request.GetString("section", "")

		ctrl.Edit(url)
		s, ok := ctrl.Submit(url)
		if !ok {
			return mcp.NewToolResultError("url is required"), nil
		}

		s, err = ctrl.Wait(ctx, s.Token)
		if errors.Is(err, controller.ErrSuperseded) {
			return mcp.NewToolResultError("superseded by a newer parse_portfolio call"), nil
		}
		if err != nil {
			return nil, err
		}
		if s.Phase == controller.Failed {
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", s.Err.Code, s.Err.Message)), nil
		}

		out, err := formatProfile(s, format, section)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

func formatProfile(s controller.State, format, section string) (string, error) {
	if format == "json" {
		v, err := jsonSection(s.Profile, section)
		if err != nil {
			return "", err
		}
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode profile: %w", err)
		}
		return string(b), nil
	}

	fragment, err := render.HTML(render.Render(s.Profile))
	if err != nil {
		return "", err
	}
	if section != "" {
		sel, ok := render.Sections[section]
		if !ok {
			return "", fmt.Errorf("unknown section %q", section)
		}
		if fragment, err = render.Select(fragment, sel); err != nil {
			return "", err
		}
	}

	switch format {
	case "html":
		return fragment, nil
	case "markdown", "":
		return render.FragmentMarkdown(fragment, "")
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// jsonSection picks the part of p matching a named section.
func jsonSection(p *models.Profile, section string) (any, error) {
	switch section {
	case "":
		return p, nil
	case "identity":
		return p.BasicInfo, nil
	case "employers":
		return p.Employers, nil
	case "videos":
		return p.Videos, nil
	default:
		return nil, fmt.Errorf("unknown section %q", section)
	}
}
