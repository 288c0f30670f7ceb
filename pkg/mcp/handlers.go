package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/generator"
	"github.com/propsmith/propsmith/pkg/modifier"
)

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argBool(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGenerateConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	code := argString(args, "code")
	if code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	cfg := s.gen.FromCode(code, config.Metadata{
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
	}, generator.Options{
		ComponentName:       argString(args, "name"),
		IncludeCommonStyles: argBool(args, "include_common_styles", true),
	})
	return jsonResult(cfg)
}

func (s *Server) handleApplyClass(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	out, err := s.modifier.ApplyClassUpdate(modifier.ClassUpdate{
		Code:        argString(args, "code"),
		Tag:         argString(args, "tag"),
		ElementID:   argString(args, "element_id"),
		NextClass:   argString(args, "value"),
		ClassGroup:  argString(args, "class_group"),
		ClassPrefix: argString(args, "class_prefix"),
	})
	return modificationResult(out, err, argString(args, "element_id"))
}

func (s *Server) handleApplyAttribute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	attribute := argString(args, "attribute")
	if attribute == "" {
		return mcp.NewToolResultError("attribute is required"), nil
	}
	out, err := s.modifier.ApplyAttributeUpdate(modifier.AttributeUpdate{
		Code:      argString(args, "code"),
		Tag:       argString(args, "tag"),
		ElementID: argString(args, "element_id"),
		Attribute: attribute,
		Value:     argString(args, "value"),
	})
	return modificationResult(out, err, argString(args, "element_id"))
}

func (s *Server) handleApplyContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	out, err := s.modifier.ApplyContentUpdate(modifier.ContentUpdate{
		Code:      argString(args, "code"),
		Tag:       argString(args, "tag"),
		ElementID: argString(args, "element_id"),
		Value:     argString(args, "value"),
	})
	return modificationResult(out, err, argString(args, "element_id"))
}

func (s *Server) handleApplyProperty(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	cfg, err := config.FromJSON([]byte(argString(args, "config")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid config: %v", err)), nil
	}

	elementID := argString(args, "element_id")
	el := cfg.Element(elementID)
	if el == nil {
		return mcp.NewToolResultError(fmt.Sprintf("element %q not found in config", elementID)), nil
	}
	propName := argString(args, "property")
	prop := el.Property(propName)
	if prop == nil {
		return mcp.NewToolResultError(fmt.Sprintf("property %q not found on element %q", propName, elementID)), nil
	}

	out, err := s.modifier.ApplyValue(cfg.Code, el, prop, argString(args, "value"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleValidateConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	cfg, err := config.FromJSON([]byte(argString(args, "config")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid config: %v", err)), nil
	}
	return jsonResult(s.validator.ValidateConfig(cfg))
}

// componentSummary is the compact listing shape returned by list_components.
type componentSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Elements    int    `json:"elements"`
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.query == nil {
		return mcp.NewToolResultError("no component library loaded"), nil
	}
	args := req.GetArguments()
	comps := s.query.ListComponents(argString(args, "category"), argString(args, "keyword"))

	summaries := make([]componentSummary, 0, len(comps))
	for _, c := range comps {
		summaries = append(summaries, componentSummary{
			Name:        c.Metadata.Name,
			Description: c.Metadata.Description,
			Category:    c.Metadata.Category,
			Elements:    len(c.EditableElements),
		})
	}
	return jsonResult(summaries)
}

func (s *Server) handleSearchComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.query == nil {
		return mcp.NewToolResultError("no component library loaded"), nil
	}
	args := req.GetArguments()
	query := argString(args, "query")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	type match struct {
		Name   string `json:"name"`
		Reason string `json:"reason"`
	}
	results := s.query.SearchComponents(query)
	matches := make([]match, 0, len(results))
	for _, r := range results {
		matches = append(matches, match{Name: r.Component.Metadata.Name, Reason: r.MatchReason})
	}
	return jsonResult(matches)
}

func (s *Server) handleGetComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.query == nil {
		return mcp.NewToolResultError("no component library loaded"), nil
	}
	args := req.GetArguments()
	name := argString(args, "name")
	comp, ok := s.query.GetComponent(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("component %q not found", name)), nil
	}
	return jsonResult(comp)
}

// modificationResult renders a modifier outcome: updated source text on
// success, a tool error on a miss.
func modificationResult(out string, err error, elementID string) (*mcp.CallToolResult, error) {
	if err != nil {
		if errors.Is(err, modifier.ErrElementNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("element %q could not be located in the code", elementID)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
