package modifier

import (
	"errors"

	"github.com/propsmith/propsmith/pkg/config"
)

// ApplyPropertyChanges applies one property edit to the code, dispatching on
// the property's apply mode with the element's strategy as fallback.
//
// It always returns a string: the mutated code on success, the original code
// unchanged on any failure to locate the target. A failed single-property
// edit never corrupts edits already baked into the code string.
func (m *Modifier) ApplyPropertyChanges(code string, element *config.EditableElement, property *config.PropertyDefinition, value string) string {
	if element == nil || property == nil {
		return code
	}

	var (
		out string
		err error
	)
	switch element.EffectiveApply(property) {
	case config.ApplyContent:
		out, err = m.ApplyContentUpdate(ContentUpdate{
			Code:      code,
			Tag:       element.Tag,
			ElementID: element.ID,
			Value:     value,
		})

	case config.ApplyAttribute:
		attr := property.AttributeName
		if attr == "" {
			// Style-backed strategies without an explicit attribute write
			// through the style attribute.
			switch element.ApplyStrategy {
			case config.StrategyStyle, config.StrategyCSSVariable:
				attr = "style"
			default:
				return code
			}
		}
		out, err = m.ApplyAttributeUpdate(AttributeUpdate{
			Code:      code,
			Tag:       element.Tag,
			ElementID: element.ID,
			Attribute: attr,
			Value:     value,
		})

	default:
		out, err = m.ApplyClassUpdate(ClassUpdate{
			Code:        code,
			Tag:         element.Tag,
			ElementID:   element.ID,
			NextClass:   value,
			ClassGroup:  property.ClassGroup,
			ClassPrefix: property.ClassPrefix,
		})
	}

	if err != nil {
		if errors.Is(err, ErrElementNotFound) {
			m.logger.Warn("property could not be applied",
				"element", element.ID,
				"property", property.Name)
		} else {
			m.logger.Warn("property edit failed",
				"element", element.ID,
				"property", property.Name,
				"error", err)
		}
		return code
	}
	return out
}

// ApplyValue validates a raw value against the property definition before
// applying it. Invalid values leave the code untouched and return the error.
func (m *Modifier) ApplyValue(code string, element *config.EditableElement, property *config.PropertyDefinition, raw string) (string, error) {
	if element == nil || property == nil {
		return code, nil
	}
	v, err := config.ParseValue(*property, raw)
	if err != nil {
		return code, err
	}
	return m.ApplyPropertyChanges(code, element, property, v.Raw()), nil
}
