// Package localization maps free-text labels (mostly Spanish) entered by
// users or found in spreadsheet imports to canonical enum tokens.
package localization

import (
	"errors"
	"strings"
	"unicode"

	"github.com/obraerp/backend/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyLabel is returned when the label is blank after normalization.
// Callers decide whether a blank value takes a default.
var ErrEmptyLabel = errors.New("empty label")

// LookupTable resolves labels for one enum
type LookupTable struct {
	field   string
	tokens  []string
	aliases map[string]string
}

// NewLookupTable builds a table for field. Every canonical token maps to
// itself; aliases map extra labels to a token. Aliases are normalized on
// construction, so they may be written with accents and any casing.
func NewLookupTable(field string, tokens []string, aliases map[string]string) *LookupTable {
	t := &LookupTable{
		field:   field,
		tokens:  tokens,
		aliases: make(map[string]string, len(tokens)+len(aliases)),
	}
	for _, tok := range tokens {
		t.aliases[Normalize(tok)] = tok
	}
	for label, tok := range aliases {
		t.aliases[Normalize(label)] = tok
	}
	return t
}

// Field returns the name of the field the table maps
func (t *LookupTable) Field() string {
	return t.field
}

// Tokens returns the canonical tokens in declaration order
func (t *LookupTable) Tokens() []string {
	out := make([]string, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// Map resolves label to its canonical token. An unknown label is a
// validation error naming the field and the value.
func (t *LookupTable) Map(label string) (string, error) {
	key := Normalize(label)
	if key == "" {
		return "", ErrEmptyLabel
	}
	tok, ok := t.aliases[key]
	if !ok {
		return "", shared.Validation("UNRECOGNIZED_"+t.code(),
			"unrecognized %s: %q (expected one of %s)", t.field, strings.TrimSpace(label), strings.Join(t.tokens, ", "))
	}
	return tok, nil
}

// MapRequired is Map for mandatory fields: a blank label is a validation
// error instead of ErrEmptyLabel.
func (t *LookupTable) MapRequired(label string) (string, error) {
	tok, err := t.Map(label)
	if errors.Is(err, ErrEmptyLabel) {
		return "", shared.Validation("MISSING_"+t.code(), "%s is required", t.field)
	}
	return tok, err
}

func (t *LookupTable) code() string {
	return strings.ToUpper(strings.ReplaceAll(t.field, " ", "_"))
}

// MapOrDefault resolves label, returning def only when label is blank.
// Unknown labels still fail.
func (t *LookupTable) MapOrDefault(label, def string) (string, error) {
	tok, err := t.Map(label)
	if errors.Is(err, ErrEmptyLabel) {
		return def, nil
	}
	return tok, err
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Normalize upper-cases s, strips diacritics and collapses runs of spaces,
// underscores and hyphens into single spaces.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToUpper(out)
	fields := strings.FieldsFunc(out, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '-'
	})
	return strings.Join(fields, " ")
}
