// Package css holds the stylesheet model consumed by the style resolver and
// the selector matcher used to pair rules with widget nodes.
package css

import (
	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	revueerrors "github.com/hawk90/revue/pkg/errors"
)

// Declaration is a single property assignment inside a rule.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule pairs one selector with an ordered list of declarations. Rules keep
// their stylesheet source order; the resolver uses that order as the
// specificity tie-break.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// StyleSheet is an ordered sequence of rules. The resolver treats it as
// read-only input.
type StyleSheet struct {
	Rules []Rule
}

// Empty reports whether the sheet contains no rules.
func (s *StyleSheet) Empty() bool {
	return s == nil || len(s.Rules) == 0
}

// Append adds the rules of another sheet after this sheet's own rules.
func (s *StyleSheet) Append(other *StyleSheet) {
	if other == nil {
		return
	}
	s.Rules = append(s.Rules, other.Rules...)
}

// Parse builds a StyleSheet from CSS source. A rule with a comma-separated
// selector list expands to one Rule per selector, preserving source order.
// At-rules are skipped; widget stylesheets have no use for them.
func Parse(source string) (*StyleSheet, error) {
	parsed, err := parser.Parse(source)
	if err != nil {
		return nil, revueerrors.NewParseError("stylesheet", 0, err)
	}

	sheet := &StyleSheet{}
	for _, rule := range parsed.Rules {
		if rule.Kind != douceur.QualifiedRule {
			continue
		}
		decls := make([]Declaration, 0, len(rule.Declarations))
		for _, d := range rule.Declarations {
			decls = append(decls, Declaration{
				Property:  d.Property,
				Value:     d.Value,
				Important: d.Important,
			})
		}
		for _, sel := range rule.Selectors {
			sheet.Rules = append(sheet.Rules, Rule{
				Selector:     sel,
				Declarations: decls,
			})
		}
	}
	return sheet, nil
}

// MustParse is Parse for static stylesheets known to be well-formed.
func MustParse(source string) *StyleSheet {
	sheet, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return sheet
}
