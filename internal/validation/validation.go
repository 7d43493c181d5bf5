// Package validation evaluates declarative per-field rule sets against a
// request payload, including rules that consult the store (uniqueness and
// existence checks). All failing fields are reported together in one pass.
package validation

import (
	"strings"

	"gorm.io/gorm"
)

// Values is the raw request payload under validation. A missing key means
// the field was not supplied at all.
type Values map[string]any

// Errors maps field names to their violation messages.
type Errors map[string][]string

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Constraint is a single rule attached to a field. Validate returns an empty
// string when the value passes, otherwise the violation message. Store-backed
// constraints read committed state through db at evaluation time.
type Constraint interface {
	Validate(field string, value any, payload Values, db *gorm.DB) string
}

// Field pairs a payload field with its ordered constraints.
type Field struct {
	Name        string
	Constraints []Constraint
}

// Check evaluates every field's constraints and returns nil when the payload
// is valid. Fields that are absent or empty only fail their Required
// constraint; the remaining rules are skipped, so optional fields may carry
// format rules that apply only when a value is supplied.
func Check(db *gorm.DB, payload Values, fields []Field) Errors {
	errs := Errors{}

	for _, field := range fields {
		value, present := payload[field.Name]

		if !present || isEmpty(value) {
			for _, constraint := range field.Constraints {
				if _, ok := constraint.(Required); ok {
					errs.add(field.Name, constraint.Validate(field.Name, value, payload, db))
				}
			}
			continue
		}

		for _, constraint := range field.Constraints {
			if message := constraint.Validate(field.Name, value, payload, db); message != "" {
				errs.add(field.Name, message)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	if s, ok := value.(string); ok {
		return s == ""
	}

	return false
}

// attribute renders a field name the way messages spell it: underscores
// become spaces ("user_id" reads "user id").
func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
