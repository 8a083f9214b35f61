package renderer

import (
	"github.com/hawk90/revue/pkg/css"
	"github.com/hawk90/revue/pkg/dom"
)

// Query returns every live node matched by the selector, in ascending
// handle order. The error reports a malformed selector; no matches is a
// nil slice with a nil error.
func (r *Renderer) Query(selector string) ([]*dom.Node, error) {
	sel, err := css.ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	var matched []*dom.Node
	for _, node := range r.tree.Nodes() {
		if sel.Matches(node, r.tree.Lookup) {
			matched = append(matched, node)
		}
	}
	return matched, nil
}

// QueryOne returns the first match of Query, or false when nothing
// matches.
func (r *Renderer) QueryOne(selector string) (*dom.Node, bool, error) {
	matched, err := r.Query(selector)
	if err != nil {
		return nil, false, err
	}
	if len(matched) == 0 {
		return nil, false, nil
	}
	return matched[0], true, nil
}
