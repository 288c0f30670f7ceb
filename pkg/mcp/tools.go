package mcp

import "github.com/mark3labs/mcp-go/mcp"

func generateConfigTool() mcp.Tool {
	return mcp.NewTool("generate_config",
		mcp.WithDescription("Analyze React component source and return its editable configuration: elements, typed properties, Tailwind class groups, and cva variants"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Component source code (JSX/TSX)")),
		mcp.WithString("name", mcp.Description("Component name for the config metadata")),
		mcp.WithString("description", mcp.Description("Component description")),
		mcp.WithBoolean("include_common_styles", mcp.Description("Synthesize baseline background/text-color properties (default true)")),
	)
}

func applyClassTool() mcp.Tool {
	return mcp.NewTool("apply_class",
		mcp.WithDescription("Apply a Tailwind class value to an element, replacing classes within the same group and returning the updated source"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Current component source")),
		mcp.WithString("tag", mcp.Required(), mcp.Description("JSX tag name of the target element")),
		mcp.WithString("element_id", mcp.Required(), mcp.Description("Element ID from the generated config, e.g. button-0")),
		mcp.WithString("value", mcp.Description("New class value; empty removes the group")),
		mcp.WithString("class_group", mcp.Description("Utility class group to replace, e.g. bg")),
		mcp.WithString("class_prefix", mcp.Description("Prefix prepended to a bare value, e.g. bg-")),
	)
}

func applyAttributeTool() mcp.Tool {
	return mcp.NewTool("apply_attribute",
		mcp.WithDescription("Set, replace, or remove a JSX attribute on an element and return the updated source"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Current component source")),
		mcp.WithString("tag", mcp.Required(), mcp.Description("JSX tag name of the target element")),
		mcp.WithString("element_id", mcp.Required(), mcp.Description("Element ID from the generated config")),
		mcp.WithString("attribute", mcp.Required(), mcp.Description("Attribute name")),
		mcp.WithString("value", mcp.Description("New attribute value; empty removes the attribute")),
	)
}

func applyContentTool() mcp.Tool {
	return mcp.NewTool("apply_content",
		mcp.WithDescription("Replace the text content between an element's opening and closing tags and return the updated source"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Current component source")),
		mcp.WithString("tag", mcp.Required(), mcp.Description("JSX tag name of the target element")),
		mcp.WithString("element_id", mcp.Required(), mcp.Description("Element ID from the generated config")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New content text")),
	)
}

func applyPropertyTool() mcp.Tool {
	return mcp.NewTool("apply_property",
		mcp.WithDescription("Apply a property edit from a component config, validating the value against the property definition first"),
		mcp.WithString("config", mcp.Required(), mcp.Description("Component config JSON")),
		mcp.WithString("element_id", mcp.Required(), mcp.Description("Target element ID")),
		mcp.WithString("property", mcp.Required(), mcp.Description("Property name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New property value")),
	)
}

func validateConfigTool() mcp.Tool {
	return mcp.NewTool("validate_config",
		mcp.WithDescription("Validate a component config: metadata, unique IDs, property consistency, code parseability, selector drift"),
		mcp.WithString("config", mcp.Required(), mcp.Description("Component config JSON")),
	)
}

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List library components filtered by category and/or keyword"),
		mcp.WithString("category", mcp.Description("Category filter")),
		mcp.WithString("keyword", mcp.Description("Keyword matched against names and descriptions")),
	)
}

func searchComponentsTool() mcp.Tool {
	return mcp.NewTool("search_components",
		mcp.WithDescription("Search library components across names, descriptions, element tags, and property names"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
	)
}

func getComponentTool() mcp.Tool {
	return mcp.NewTool("get_component",
		mcp.WithDescription("Get one library component config by name"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Component name")),
	)
}
