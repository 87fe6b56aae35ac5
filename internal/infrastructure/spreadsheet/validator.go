package spreadsheet

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldType is the expected content of a cell
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeDecimal FieldType = "decimal"
	TypeEmail   FieldType = "email"
)

// FieldRule constrains one column of a row
type FieldRule struct {
	Column     string
	Required   bool
	Type       FieldType
	MaxLength  int
	Unique     bool
	CustomFunc func(value string) error
}

// FieldRuleBuilder builds a FieldRule fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for column
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: column, Type: TypeString}}
}

func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

func (b *FieldRuleBuilder) Email() *FieldRuleBuilder {
	b.rule.Type = TypeEmail
	return b
}

func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Unique rejects a value already seen earlier in the same file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator applies rules in declaration order and reports the first
// failure of a row
type FieldValidator struct {
	rules    []FieldRule
	seen     map[string]map[string]int
	validate *validator.Validate
}

func NewFieldValidator(rules []FieldRule) *FieldValidator {
	return &FieldValidator{
		rules:    rules,
		seen:     make(map[string]map[string]int),
		validate: validator.New(),
	}
}

// Validate returns nil when every rule passes. Unique values are only
// compared against rows passed to Accept, so a rejected row never blocks
// a later one.
func (v *FieldValidator) Validate(row *Row) error {
	for _, rule := range v.rules {
		value := row.Get(rule.Column)
		if value == "" {
			if rule.Required {
				return fmt.Errorf("%s is required", rule.Column)
			}
			continue
		}
		if rule.MaxLength > 0 && utf8.RuneCountInString(value) > rule.MaxLength {
			return fmt.Errorf("%s exceeds %d characters", rule.Column, rule.MaxLength)
		}
		switch rule.Type {
		case TypeDecimal:
			if _, err := decimal.NewFromString(value); err != nil {
				return fmt.Errorf("%s must be a number, got %q", rule.Column, value)
			}
		case TypeEmail:
			if err := v.validate.Var(value, "email"); err != nil {
				return fmt.Errorf("%s is not a valid email: %q", rule.Column, value)
			}
		}
		if rule.Unique {
			if first, dup := v.seen[rule.Column][value]; dup {
				return fmt.Errorf("duplicate %s %q (first seen in row %d)", rule.Column, value, first)
			}
		}
		if rule.CustomFunc != nil {
			if err := rule.CustomFunc(value); err != nil {
				return fmt.Errorf("%s: %w", rule.Column, err)
			}
		}
	}
	return nil
}

// Accept records the unique values of a row that was imported
func (v *FieldValidator) Accept(row *Row) {
	for _, rule := range v.rules {
		value := row.Get(rule.Column)
		if !rule.Unique || value == "" {
			continue
		}
		if v.seen[rule.Column] == nil {
			v.seen[rule.Column] = make(map[string]int)
		}
		if _, dup := v.seen[rule.Column][value]; !dup {
			v.seen[rule.Column][value] = row.Number
		}
	}
}
