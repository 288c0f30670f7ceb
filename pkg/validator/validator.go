// Package validator checks component configs for structural problems before
// they are stored or served: identity uniqueness, property consistency, and
// whether the config's elements can still be located in its current code.
package validator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/jsx"
	"github.com/propsmith/propsmith/pkg/parser"
)

// Result is the outcome of validating one component config. Errors block a
// save; warnings are informational only.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Err joins the result's errors into a single error, or nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, errors.New(e))
	}
	return errors.Join(errs...)
}

// Validator validates component configs against their own code.
type Validator struct {
	parsers *parser.Manager
	logger  *slog.Logger
}

// New creates a validator. A nil logger falls back to slog.Default().
func New(parsers *parser.Manager, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{parsers: parsers, logger: logger}
}

// ValidateConfig checks a component config.
//
// Errors: missing metadata name, empty code, duplicate element IDs,
// duplicate property names within an element, class-applied properties with
// no class group, and unparseable code.
//
// Warnings: elements whose selector no longer resolves in the current code
// (source edits can legitimately drift the selector), elements with no
// properties, and class groups missing from the element's editable set.
func (v *Validator) ValidateConfig(cfg *config.ComponentConfig) Result {
	var res Result
	if cfg == nil {
		res.Errors = append(res.Errors, "config is nil")
		return res
	}

	if cfg.Metadata.Name == "" {
		res.Errors = append(res.Errors, "metadata name is required")
	}
	if cfg.Metadata.Description == "" {
		res.Warnings = append(res.Warnings, "metadata description is empty")
	}
	if cfg.Code == "" {
		res.Errors = append(res.Errors, "component code is required")
	}

	seenIDs := make(map[string]bool)
	for i := range cfg.EditableElements {
		el := &cfg.EditableElements[i]
		if seenIDs[el.ID] {
			res.Errors = append(res.Errors, fmt.Sprintf("duplicate element id %q", el.ID))
		}
		seenIDs[el.ID] = true
		v.validateElement(el, &res)
	}

	var elements []jsx.Element
	if cfg.Code != "" {
		source := []byte(cfg.Code)
		tree, err := v.parsers.ParseComponent(source)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("code could not be parsed: %v", err))
		} else {
			defer tree.Close()
			root := tree.RootNode()
			if root.HasError() {
				res.Errors = append(res.Errors, "code is not syntactically valid")
			} else {
				elements = jsx.Collect(root, source)
			}
		}
	}

	if elements != nil {
		for i := range cfg.EditableElements {
			el := &cfg.EditableElements[i]
			if el.ID == "root" && el.Tag == "div" {
				// Synthetic root elements have no physical selector.
				continue
			}
			if jsx.Find(elements, el.Tag, jsx.OccurrenceFromID(el.ID)) == nil {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("element %q can no longer be located in the code", el.ID))
			}
		}
	}

	res.Valid = len(res.Errors) == 0
	if !res.Valid {
		v.logger.Debug("config validation failed",
			"component", cfg.Metadata.Name,
			"errors", len(res.Errors),
			"warnings", len(res.Warnings))
	}
	return res
}

func (v *Validator) validateElement(el *config.EditableElement, res *Result) {
	if len(el.Properties) == 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("element %q has no properties", el.ID))
	}

	editable := make(map[string]bool)
	if el.Tailwind != nil {
		for _, g := range el.Tailwind.EditableGroups {
			editable[g] = true
		}
	}

	seen := make(map[string]bool)
	for i := range el.Properties {
		prop := &el.Properties[i]
		if seen[prop.Name] {
			res.Errors = append(res.Errors,
				fmt.Sprintf("element %q has duplicate property %q", el.ID, prop.Name))
		}
		seen[prop.Name] = true

		if prop.Apply == config.ApplyClass {
			if prop.ClassGroup == "" {
				res.Errors = append(res.Errors,
					fmt.Sprintf("element %q property %q is class-applied but has no class group", el.ID, prop.Name))
			} else if el.Tailwind != nil && !editable[prop.ClassGroup] {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("element %q property %q uses group %q outside the editable groups", el.ID, prop.Name, prop.ClassGroup))
			}
		}
	}
}
