package style

import (
	"sort"

	"github.com/hawk90/revue/pkg/css"
	"github.com/hawk90/revue/pkg/dom"
)

// CachedSelector pairs a parsed selector with the index of the rule it came
// from. The rule index doubles as the source-order tie-break of the cascade.
type CachedSelector struct {
	Selector *css.Selector
	Rule     int
}

// CompileSelectors parses every rule selector in the sheet. Selectors that
// fail to parse are dropped: their rules never match anything, and the
// failure is not fatal at resolution time.
func CompileSelectors(sheet *css.StyleSheet) []CachedSelector {
	if sheet.Empty() {
		return nil
	}
	cached := make([]CachedSelector, 0, len(sheet.Rules))
	for i, rule := range sheet.Rules {
		sel, err := css.ParseSelector(rule.Selector)
		if err != nil {
			continue
		}
		cached = append(cached, CachedSelector{Selector: sel, Rule: i})
	}
	return cached
}

// Resolver computes cascaded styles for nodes against one stylesheet.
type Resolver struct {
	sheet     *css.StyleSheet
	selectors []CachedSelector
}

// NewResolver builds a resolver, parsing the sheet's selectors.
func NewResolver(sheet *css.StyleSheet) *Resolver {
	return NewResolverWithSelectors(sheet, CompileSelectors(sheet))
}

// NewResolverWithSelectors builds a resolver around a pre-parsed selector
// list. The same node and sheet must resolve identically with or without
// the cache; this constructor only skips re-parsing.
func NewResolverWithSelectors(sheet *css.StyleSheet, selectors []CachedSelector) *Resolver {
	return &Resolver{sheet: sheet, selectors: selectors}
}

// ComputeStyle matches every rule against the node, sorts the matches by
// specificity ascending with stylesheet order breaking ties, and applies
// declarations in that order. Later declarations overwrite earlier ones
// property-by-property, never wholesale. Important declarations apply in a
// second pass over the same ordering.
func (r *Resolver) ComputeStyle(node *dom.Node, lookup css.LookupFunc) Style {
	resolved := Default()
	if node == nil {
		return resolved
	}

	matches := make([]CachedSelector, 0, len(r.selectors))
	for _, cs := range r.selectors {
		if cs.Selector.Matches(node, lookup) {
			matches = append(matches, cs)
		}
	}
	// The slice is already in source order, so a stable sort on specificity
	// alone leaves equal-specificity rules in declaration order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Selector.Specificity().Compare(matches[j].Selector.Specificity()) < 0
	})

	for _, m := range matches {
		for _, decl := range r.sheet.Rules[m.Rule].Declarations {
			if !decl.Important {
				resolved.Apply(decl)
			}
		}
	}
	for _, m := range matches {
		for _, decl := range r.sheet.Rules[m.Rule].Declarations {
			if decl.Important {
				resolved.Apply(decl)
			}
		}
	}
	return resolved
}

// ComputeStyleWithParent resolves the node's own cascade and then fills
// inherited properties left unset from the parent's resolved style.
func (r *Resolver) ComputeStyleWithParent(node *dom.Node, parent *Style, lookup css.LookupFunc) Style {
	resolved := r.ComputeStyle(node, lookup)
	resolved.InheritFrom(parent)
	return resolved
}
