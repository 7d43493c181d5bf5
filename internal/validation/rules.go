package validation

import (
	"fmt"
	"log"
	"strconv"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Required fails on absent or empty values.
type Required struct{}

func (Required) Validate(field string, value any, _ Values, _ *gorm.DB) string {
	if isEmpty(value) {
		return fmt.Sprintf("The %s field is required.", attribute(field))
	}
	return ""
}

// IsString fails unless the value is a JSON string.
type IsString struct{}

func (IsString) Validate(field string, value any, _ Values, _ *gorm.DB) string {
	if _, ok := value.(string); !ok {
		return fmt.Sprintf("The %s must be a string.", attribute(field))
	}
	return ""
}

// Numeric accepts JSON numbers and numeric strings (path parameters arrive
// as strings).
type Numeric struct{}

func (Numeric) Validate(field string, value any, _ Values, _ *gorm.DB) string {
	switch v := value.(type) {
	case float64, int, int64, uint:
		return ""
	case string:
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return ""
		}
	}
	return fmt.Sprintf("The %s must be a number.", attribute(field))
}

// Boolean accepts true/false, 0/1 and their string forms.
type Boolean struct{}

func (Boolean) Validate(field string, value any, _ Values, _ *gorm.DB) string {
	switch v := value.(type) {
	case bool:
		return ""
	case float64:
		if v == 0 || v == 1 {
			return ""
		}
	case string:
		switch v {
		case "0", "1", "true", "false":
			return ""
		}
	}
	return fmt.Sprintf("The %s field must be true or false.", attribute(field))
}

// MinLen is a minimum string length in characters.
type MinLen int

func (m MinLen) Validate(field string, value any, _ Values, _ *gorm.DB) string {
	if s, ok := value.(string); ok && utf8.RuneCountInString(s) < int(m) {
		return fmt.Sprintf("The %s must be at least %d characters.", attribute(field), int(m))
	}
	return ""
}

// MaxLen is a maximum string length in characters.
type MaxLen int

func (m MaxLen) Validate(field string, value any, _ Values, _ *gorm.DB) string {
	if s, ok := value.(string); ok && utf8.RuneCountInString(s) > int(m) {
		return fmt.Sprintf("The %s may not be greater than %d characters.", attribute(field), int(m))
	}
	return ""
}

// DateFormat matches a value against a Go time layout. Format is the name
// the violation message uses for it ("Y-m-d", "H:i").
type DateFormat struct {
	Layout string
	Format string
}

func (d DateFormat) Validate(field string, value any, _ Values, _ *gorm.DB) string {
	message := fmt.Sprintf("The %s does not match the format %s.", attribute(field), d.Format)

	s, ok := value.(string)
	if !ok {
		return message
	}

	if _, err := time.Parse(d.Layout, s); err != nil {
		return message
	}

	return ""
}

// Confirmed requires a matching sibling field named <field>_confirmation.
type Confirmed struct{}

func (Confirmed) Validate(field string, value any, payload Values, _ *gorm.DB) string {
	if confirmation, ok := payload[field+"_confirmation"]; !ok || confirmation != value {
		return fmt.Sprintf("The %s confirmation does not match.", attribute(field))
	}
	return ""
}

// Unique fails when a row already holds this value in Table.Column. Except
// skips one row (updates excluding themselves) and Where narrows the check
// to a composite key. Values are always bound, never interpolated; Table and
// Column are compile-time constants at every call site.
type Unique struct {
	Table   string
	Column  string
	Except  string
	ExceptV any
	Where   string
	WhereV  any
	Message string
}

func (u Unique) Validate(field string, value any, _ Values, db *gorm.DB) string {
	query := db.Table(u.Table).Where(u.Column+" = ?", value)

	if u.Except != "" {
		query = query.Where(u.Except+" <> ?", u.ExceptV)
	}

	if u.Where != "" {
		query = query.Where(u.Where+" = ?", u.WhereV)
	}

	var count int64

	if err := query.Count(&count).Error; err != nil {
		log.Printf("Unique check on %s.%s failed: %v", u.Table, u.Column, err)
		count = 1
	}

	if count > 0 {
		if u.Message != "" {
			return u.Message
		}
		return fmt.Sprintf("The %s has already been taken.", attribute(field))
	}

	return ""
}

// Exists fails unless a row holds this value in Table.Column, optionally
// filtered by one extra equality predicate.
type Exists struct {
	Table   string
	Column  string
	Where   string
	WhereV  any
	Message string
}

func (e Exists) Validate(field string, value any, _ Values, db *gorm.DB) string {
	query := db.Table(e.Table).Where(e.Column+" = ?", value)

	if e.Where != "" {
		query = query.Where(e.Where+" = ?", e.WhereV)
	}

	var count int64

	if err := query.Count(&count).Error; err != nil {
		log.Printf("Exists check on %s.%s failed: %v", e.Table, e.Column, err)
		count = 0
	}

	if count == 0 {
		if e.Message != "" {
			return e.Message
		}
		return fmt.Sprintf("The selected %s is invalid.", attribute(field))
	}

	return ""
}
