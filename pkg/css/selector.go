package css

import (
	"strings"
	"unicode"

	"github.com/hawk90/revue/pkg/dom"
	revueerrors "github.com/hawk90/revue/pkg/errors"
)

// LookupFunc resolves a node handle to its node. Selector matching receives
// it as a capability so combinators can walk ancestors without the matcher
// holding a tree reference.
type LookupFunc func(dom.NodeID) (*dom.Node, bool)

// Combinator joins two compound selectors.
type Combinator int

const (
	// CombinatorDescendant matches any ancestor ("A B").
	CombinatorDescendant Combinator = iota
	// CombinatorChild matches the direct parent only ("A > B").
	CombinatorChild
)

// Specificity orders matched rules for the cascade: id selectors outrank
// class selectors, which outrank type selectors. Pseudo-classes count at
// class level, as in CSS.
type Specificity struct {
	IDs     int
	Classes int
	Types   int
}

// Compare returns -1, 0 or 1 ordering s against other.
func (s Specificity) Compare(other Specificity) int {
	if s.IDs != other.IDs {
		return sign(s.IDs - other.IDs)
	}
	if s.Classes != other.Classes {
		return sign(s.Classes - other.Classes)
	}
	return sign(s.Types - other.Types)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// compound is one simple-selector sequence, e.g. "Button#ok.primary:focus".
type compound struct {
	universal bool
	widget    string
	id        string
	classes   []string
	pseudos   []string
}

// Selector is a parsed selector: a chain of compound selectors joined by
// combinators. Matching is pure and side-effect-free.
type Selector struct {
	raw         string
	parts       []compound
	combinators []Combinator
}

// String returns the selector source text.
func (s *Selector) String() string {
	return s.raw
}

// Specificity computes the selector's cascade weight.
func (s *Selector) Specificity() Specificity {
	var spec Specificity
	for _, part := range s.parts {
		if part.id != "" {
			spec.IDs++
		}
		spec.Classes += len(part.classes) + len(part.pseudos)
		if part.widget != "" {
			spec.Types++
		}
	}
	return spec
}

// Matches reports whether the selector matches the node. Ancestors are
// resolved through lookup to support descendant and child combinators.
func (s *Selector) Matches(node *dom.Node, lookup LookupFunc) bool {
	if node == nil || len(s.parts) == 0 {
		return false
	}
	last := len(s.parts) - 1
	if !s.parts[last].matches(node) {
		return false
	}
	return s.matchAncestors(last-1, node.Parent, lookup)
}

// matchAncestors matches parts[idx] and everything left of it against the
// ancestor chain starting at from. combinators[idx] joins parts[idx] with
// parts[idx+1].
func (s *Selector) matchAncestors(idx int, from dom.NodeID, lookup LookupFunc) bool {
	if idx < 0 {
		return true
	}
	if lookup == nil {
		return false
	}
	if s.combinators[idx] == CombinatorChild {
		parent, ok := lookup(from)
		if !ok || !s.parts[idx].matches(parent) {
			return false
		}
		return s.matchAncestors(idx-1, parent.Parent, lookup)
	}
	for cur := from; cur.IsValid(); {
		ancestor, ok := lookup(cur)
		if !ok {
			return false
		}
		if s.parts[idx].matches(ancestor) && s.matchAncestors(idx-1, ancestor.Parent, lookup) {
			return true
		}
		cur = ancestor.Parent
	}
	return false
}

func (c compound) matches(node *dom.Node) bool {
	if c.widget != "" && c.widget != node.Meta.Widget {
		return false
	}
	if c.id != "" && c.id != node.Meta.ID {
		return false
	}
	for _, class := range c.classes {
		if !node.Meta.HasClass(class) {
			return false
		}
	}
	for _, pseudo := range c.pseudos {
		switch pseudo {
		case "focus":
			if !node.State.Focused {
				return false
			}
		case "hover":
			if !node.State.Hovered {
				return false
			}
		case "disabled":
			if !node.State.Disabled {
				return false
			}
		default:
			// Unknown pseudo-classes never match.
			return false
		}
	}
	return true
}

// ParseSelector parses selector text into a matchable Selector. Supported
// syntax: type names, "*", "#id", ".class", ":pseudo", compounds thereof,
// and descendant / child ('>') combinators.
func ParseSelector(text string) (*Selector, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, revueerrors.NewSelectorError(text, "empty selector")
	}

	sel := &Selector{raw: trimmed}
	pendingChild := false

	for _, token := range tokenizeSelector(trimmed) {
		if token == ">" {
			if len(sel.parts) == 0 || pendingChild {
				return nil, revueerrors.NewSelectorError(text, "misplaced combinator")
			}
			pendingChild = true
			continue
		}
		part, err := parseCompound(token, text)
		if err != nil {
			return nil, err
		}
		if len(sel.parts) > 0 {
			if pendingChild {
				sel.combinators = append(sel.combinators, CombinatorChild)
			} else {
				sel.combinators = append(sel.combinators, CombinatorDescendant)
			}
		}
		sel.parts = append(sel.parts, part)
		pendingChild = false
	}

	if pendingChild {
		return nil, revueerrors.NewSelectorError(text, "dangling combinator")
	}
	if len(sel.parts) == 0 {
		return nil, revueerrors.NewSelectorError(text, "empty selector")
	}
	return sel, nil
}

// tokenizeSelector splits selector text into compound tokens and ">"
// combinator tokens, tolerating missing whitespace around '>'.
func tokenizeSelector(text string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '>':
			flush()
			tokens = append(tokens, ">")
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func parseCompound(token, source string) (compound, error) {
	var part compound
	rest := token
	readName := func(s string) (string, string) {
		for i, r := range s {
			if r == '#' || r == '.' || r == ':' || r == '*' {
				return s[:i], s[i:]
			}
		}
		return s, ""
	}

	// Leading type name or universal selector.
	switch {
	case strings.HasPrefix(rest, "*"):
		part.universal = true
		rest = rest[1:]
	case rest != "" && rest[0] != '#' && rest[0] != '.' && rest[0] != ':':
		var name string
		name, rest = readName(rest)
		if !validIdentifier(name) {
			return part, revueerrors.NewSelectorError(source, "invalid type selector "+name)
		}
		part.widget = name
	}

	for rest != "" {
		marker := rest[0]
		var name string
		name, rest = readName(rest[1:])
		if !validIdentifier(name) {
			return part, revueerrors.NewSelectorError(source, "invalid identifier in compound "+token)
		}
		switch marker {
		case '#':
			if part.id != "" {
				return part, revueerrors.NewSelectorError(source, "duplicate id in compound "+token)
			}
			part.id = name
		case '.':
			part.classes = append(part.classes, name)
		case ':':
			part.pseudos = append(part.pseudos, name)
		default:
			return part, revueerrors.NewSelectorError(source, "unexpected token in compound "+token)
		}
	}

	if !part.universal && part.widget == "" && part.id == "" && len(part.classes) == 0 && len(part.pseudos) == 0 {
		return part, revueerrors.NewSelectorError(source, "empty compound selector")
	}
	return part, nil
}

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
