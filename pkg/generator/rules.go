package generator

import (
	"regexp"
	"strings"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/tailwind"
)

// fontSizeOptions is the fixed option list offered for the fontSize select.
// Larger sizes still classify as fontSize during inference, but the panel
// offers this range.
var fontSizeOptions = []string{
	"text-xs", "text-sm", "text-base", "text-lg",
	"text-xl", "text-2xl", "text-3xl", "text-4xl",
}

var fontWeightOptions = []string{
	"font-thin", "font-extralight", "font-light", "font-normal", "font-medium",
	"font-semibold", "font-bold", "font-extrabold", "font-black",
}

var fontSizeSuffixes = map[string]bool{
	"xs": true, "sm": true, "base": true, "lg": true, "xl": true,
	"2xl": true, "3xl": true, "4xl": true, "5xl": true, "6xl": true,
	"7xl": true, "8xl": true, "9xl": true,
}

var fontWeightSuffixes = map[string]bool{
	"thin": true, "extralight": true, "light": true, "normal": true,
	"medium": true, "semibold": true, "bold": true, "extrabold": true,
	"black": true,
}

var spacingRe = regexp.MustCompile(`^([pm])([tblrxy])?-(.+)$`)

var spacingNames = map[string]string{
	"p": "padding", "pt": "paddingTop", "pb": "paddingBottom",
	"pl": "paddingLeft", "pr": "paddingRight", "px": "paddingX", "py": "paddingY",
	"m": "margin", "mt": "marginTop", "mb": "marginBottom",
	"ml": "marginLeft", "mr": "marginRight", "mx": "marginX", "my": "marginY",
}

// inferProperty maps one class token to a property definition, or nil when no
// rule applies. Default values carry the full class token so re-applying a
// default is a no-op modulo class ordering.
func inferProperty(token string) *config.PropertyDefinition {
	switch {
	case strings.HasPrefix(token, "bg-"):
		return &config.PropertyDefinition{
			Name:         "backgroundColor",
			Label:        "Background Color",
			Type:         config.PropertyColor,
			DefaultValue: token,
			Apply:        config.ApplyClass,
			ClassGroup:   "bg",
			ClassPrefix:  "bg-",
		}

	case strings.HasPrefix(token, "text-"):
		suffix := strings.TrimPrefix(token, "text-")
		if fontSizeSuffixes[suffix] {
			return &config.PropertyDefinition{
				Name:         "fontSize",
				Label:        "Font Size",
				Type:         config.PropertySelect,
				DefaultValue: token,
				Options:      fontSizeOptions,
				Apply:        config.ApplyClass,
				ClassGroup:   "text",
				ClassPrefix:  "text-",
			}
		}
		return &config.PropertyDefinition{
			Name:         "color",
			Label:        "Text Color",
			Type:         config.PropertyColor,
			DefaultValue: token,
			Apply:        config.ApplyClass,
			ClassGroup:   "text",
			ClassPrefix:  "text-",
		}

	case strings.HasPrefix(token, "font-"):
		if !fontWeightSuffixes[strings.TrimPrefix(token, "font-")] {
			return nil
		}
		return &config.PropertyDefinition{
			Name:         "fontWeight",
			Label:        "Font Weight",
			Type:         config.PropertySelect,
			DefaultValue: token,
			Options:      fontWeightOptions,
			Apply:        config.ApplyClass,
			ClassGroup:   "font",
			ClassPrefix:  "font-",
		}

	case token == "rounded" || strings.HasPrefix(token, "rounded-"):
		return &config.PropertyDefinition{
			Name:         "borderRadius",
			Label:        "Border Radius",
			Type:         config.PropertyString,
			DefaultValue: token,
			Apply:        config.ApplyClass,
			ClassGroup:   "rounded",
			ClassPrefix:  "rounded-",
		}

	default:
		m := spacingRe.FindStringSubmatch(token)
		if m == nil {
			return nil
		}
		group := m[1] + m[2]
		name, ok := spacingNames[group]
		if !ok {
			return nil
		}
		return &config.PropertyDefinition{
			Name:         name,
			Label:        humanize(name),
			Type:         config.PropertyString,
			DefaultValue: token,
			Apply:        config.ApplyClass,
			ClassGroup:   group,
			ClassPrefix:  group + "-",
		}
	}
}

// inferProperties derives the property list for one element's class tokens.
// First match wins per property name, so the first bg-* class seen defines
// backgroundColor and later ones do not overwrite it.
func inferProperties(tokens []string) []config.PropertyDefinition {
	var props []config.PropertyDefinition
	seen := make(map[string]bool)
	for _, token := range tokens {
		prop := inferProperty(token)
		if prop == nil || seen[prop.Name] {
			continue
		}
		seen[prop.Name] = true
		props = append(props, *prop)
	}
	return props
}

// commonStyleProperties synthesizes the baseline background/text-color
// properties when the element did not carry them.
func commonStyleProperties(existing []config.PropertyDefinition) []config.PropertyDefinition {
	has := make(map[string]bool, len(existing))
	for _, p := range existing {
		has[p.Name] = true
	}

	var extra []config.PropertyDefinition
	if !has["backgroundColor"] {
		extra = append(extra, config.PropertyDefinition{
			Name:         "backgroundColor",
			Label:        "Background Color",
			Type:         config.PropertyColor,
			DefaultValue: "bg-white",
			Apply:        config.ApplyClass,
			ClassGroup:   "bg",
			ClassPrefix:  "bg-",
		})
	}
	if !has["color"] {
		extra = append(extra, config.PropertyDefinition{
			Name:         "color",
			Label:        "Text Color",
			Type:         config.PropertyColor,
			DefaultValue: "text-slate-900",
			Apply:        config.ApplyClass,
			ClassGroup:   "text",
			ClassPrefix:  "text-",
		})
	}
	return extra
}

// buildTailwindConfig derives the per-element group policy. Every distinct
// group present in the tokens or backing a class property becomes editable;
// bg and text are always replace groups, everything else merges.
func buildTailwindConfig(tokens []string, props []config.PropertyDefinition) *config.TailwindConfig {
	var editable []string
	seen := make(map[string]bool)
	add := func(group string) {
		if group == "" || seen[group] {
			return
		}
		seen[group] = true
		editable = append(editable, group)
	}
	for _, token := range tokens {
		add(tailwind.Group(token))
	}
	for _, p := range props {
		if p.Apply == config.ApplyClass {
			add(p.ClassGroup)
		}
	}
	if len(editable) == 0 {
		return nil
	}

	tc := &config.TailwindConfig{
		EditableGroups: editable,
		ReplaceGroups:  []string{"bg", "text"},
	}
	for _, g := range editable {
		if g != "bg" && g != "text" {
			tc.MergeGroups = append(tc.MergeGroups, g)
		}
	}
	return tc
}

// knownComponentTypes is the fixed canonical component type table.
var knownComponentTypes = []string{
	"button", "input", "card", "dialog", "navigation-menu", "badge", "label",
}

var camelBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// camelToKebab converts CamelCase to kebab-case ("NavigationMenu" ->
// "navigation-menu").
func camelToKebab(s string) string {
	return strings.ToLower(camelBoundaryRe.ReplaceAllString(s, "${1}-${2}"))
}

// componentType maps a tag name to its canonical component type. Exact kebab
// matches win; capitalized tags then fall back to substring heuristics
// ("NavigationMenuItem" -> "navigation-menu"); everything else is the
// lowercased literal tag.
func componentType(tag string) string {
	kebab := camelToKebab(tag)
	for _, t := range knownComponentTypes {
		if kebab == t {
			return t
		}
	}
	if tag != "" && tag[0] >= 'A' && tag[0] <= 'Z' {
		flat := strings.ToLower(tag)
		for _, t := range knownComponentTypes {
			if strings.Contains(flat, strings.ReplaceAll(t, "-", "")) {
				return t
			}
		}
	}
	return strings.ToLower(tag)
}

// humanize turns a camelCase property name into a display label.
func humanize(name string) string {
	if name == "" {
		return ""
	}
	spaced := camelBoundaryRe.ReplaceAllString(name, "${1} ${2}")
	words := strings.Fields(spaced)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
