package csvimport

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FieldType is the expected scalar type of a column
type FieldType string

const (
	TypeText    FieldType = "text"
	TypeDecimal FieldType = "decimal"
)

// Rule describes the constraints on one column
type Rule struct {
	Column    string
	Type      FieldType
	Required  bool
	MaxLength int
	Min       *decimal.Decimal
	Unique    bool
}

// RuleBuilder assembles a Rule fluently
type RuleBuilder struct {
	rule Rule
}

// Column starts a rule for the named column
func Column(name string) *RuleBuilder {
	return &RuleBuilder{rule: Rule{Column: name, Type: TypeText}}
}

// Required marks the column as mandatory
func (b *RuleBuilder) Required() *RuleBuilder {
	b.rule.Required = true
	return b
}

// Decimal expects a decimal number
func (b *RuleBuilder) Decimal() *RuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// MaxLength caps the value length in bytes
func (b *RuleBuilder) MaxLength(n int) *RuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Min sets the lower bound for decimal columns
func (b *RuleBuilder) Min(v decimal.Decimal) *RuleBuilder {
	b.rule.Min = &v
	return b
}

// Unique rejects values repeated within the file
func (b *RuleBuilder) Unique() *RuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the assembled rule
func (b *RuleBuilder) Build() Rule {
	return b.rule
}

// Validator applies column rules to rows, accumulating errors up to a cap
type Validator struct {
	rules     []Rule
	seen      map[string]map[string]int
	errors    []RowError
	maxErrors int
}

// NewValidator creates a validator for the given rules.
// maxErrors <= 0 keeps every error.
func NewValidator(rules []Rule, maxErrors int) *Validator {
	return &Validator{
		rules:     rules,
		seen:      make(map[string]map[string]int),
		maxErrors: maxErrors,
	}
}

// ValidateRow checks one row and reports whether it passed
func (v *Validator) ValidateRow(row *Row) bool {
	ok := true
	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if value == "" {
			if rule.Required {
				v.add(RowError{Line: row.Line, Column: rule.Column, Code: CodeRequired,
					Message: "value is required"})
				ok = false
			}
			continue
		}

		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			v.add(RowError{Line: row.Line, Column: rule.Column, Code: CodeTooLong,
				Message: fmt.Sprintf("value exceeds %d characters", rule.MaxLength)})
			ok = false
			continue
		}

		if rule.Type == TypeDecimal {
			n, err := decimal.NewFromString(value)
			if err != nil {
				v.add(RowError{Line: row.Line, Column: rule.Column, Code: CodeInvalidType,
					Message: fmt.Sprintf("%q is not a valid number", value)})
				ok = false
				continue
			}
			if rule.Min != nil && n.LessThan(*rule.Min) {
				v.add(RowError{Line: row.Line, Column: rule.Column, Code: CodeOutOfRange,
					Message: fmt.Sprintf("value must be at least %s", rule.Min)})
				ok = false
				continue
			}
		}

		if rule.Unique {
			values, found := v.seen[rule.Column]
			if !found {
				values = make(map[string]int)
				v.seen[rule.Column] = values
			}
			if firstLine, dup := values[value]; dup {
				v.add(RowError{Line: row.Line, Column: rule.Column, Code: CodeDuplicate,
					Message: fmt.Sprintf("duplicate of line %d", firstLine)})
				ok = false
			} else {
				values[value] = row.Line
			}
		}
	}
	return ok
}

func (v *Validator) add(err RowError) {
	if v.maxErrors > 0 && len(v.errors) >= v.maxErrors {
		return
	}
	v.errors = append(v.errors, err)
}

// Errors returns the accumulated row errors
func (v *Validator) Errors() []RowError {
	return v.errors
}
