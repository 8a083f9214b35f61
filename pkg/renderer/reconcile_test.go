package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hawk90/revue/pkg/dom"
	"github.com/hawk90/revue/pkg/view"
)

// testView is a minimal view fixture for reconciliation tests.
type testView struct {
	widget  string
	id      string
	classes []string
	kids    []view.View
}

func (v testView) Meta() dom.Meta {
	return dom.Meta{Widget: v.widget, ID: v.id, Classes: v.classes}
}

func (v testView) Children() []view.View { return v.kids }

func (v testView) Render(_ *view.Context) {}

func app(kids ...view.View) testView {
	return testView{widget: "App", id: "app", kids: kids}
}

func stack(kids ...view.View) testView {
	return testView{widget: "Stack", kids: kids}
}

func button(id string, classes ...string) testView {
	return testView{widget: "Button", id: id, classes: classes}
}

func text(id string) testView {
	return testView{widget: "Text", id: id}
}

func TestBuildFreshCreatesTree(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(stack(text("t1"), button("ok"))))

	require.Equal(t, 4, r.Tree().Len())

	root, ok := r.Tree().Get(r.Tree().RootID())
	require.True(t, ok)
	require.Equal(t, "App", root.Meta.Widget)
	require.Len(t, root.Children, 1)

	btn, ok := r.GetByID("ok")
	require.True(t, ok)
	require.Equal(t, "Button", btn.Meta.Widget)
}

func TestRebuildIdenticalKeepsEveryHandle(t *testing.T) {
	t.Parallel()

	r := New(nil)
	build := func() { r.Build(app(stack(text("t1"), button("ok")))) }

	build()
	before := make(map[dom.NodeID]string)
	for _, n := range r.Tree().Nodes() {
		before[n.ID] = n.Meta.Widget
	}

	build()
	require.Equal(t, len(before), r.Tree().Len())
	for _, n := range r.Tree().Nodes() {
		require.Equal(t, before[n.ID], n.Meta.Widget, "handle %d changed identity", n.ID)
	}
}

func TestReorderByElementIDReusesNodes(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("a"), button("b")))

	a, _ := r.GetByID("a")
	b, _ := r.GetByID("b")
	r.ComputeStylesWithInheritance()

	r.Build(app(button("b"), button("a")))

	a2, ok := r.GetByID("a")
	require.True(t, ok)
	b2, ok := r.GetByID("b")
	require.True(t, ok)
	require.Equal(t, a.ID, a2.ID)
	require.Equal(t, b.ID, b2.ID)

	root, _ := r.Tree().Get(r.Tree().RootID())
	require.Equal(t, []dom.NodeID{b.ID, a.ID}, root.Children)

	// A pure reorder changes nothing about either node's cascade.
	require.False(t, a2.State.Dirty)
	require.False(t, b2.State.Dirty)
	require.Contains(t, r.styles, a.ID)
	require.Contains(t, r.styles, b.ID)
}

func TestGrowthKeepsExistingChild(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(text("t1")))
	require.Equal(t, 2, r.Tree().Len())
	t1, _ := r.GetByID("t1")

	r.Build(app(text("t1"), text("t2")))
	require.Equal(t, 3, r.Tree().Len())

	t1After, ok := r.GetByID("t1")
	require.True(t, ok)
	require.Equal(t, t1.ID, t1After.ID)
	_, ok = r.GetByID("t2")
	require.True(t, ok)
}

func TestPositionalMatchRequiresSameWidget(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(testView{widget: "Text"}, testView{widget: "Text"}))
	root, _ := r.Tree().Get(r.Tree().RootID())
	first := root.Children[0]
	second := root.Children[1]

	// Same position, different widget type: the retained node is destroyed.
	r.Build(app(testView{widget: "Button"}, testView{widget: "Text"}))
	root, _ = r.Tree().Get(r.Tree().RootID())
	require.Len(t, root.Children, 2)
	require.NotEqual(t, first, root.Children[0])
	require.Equal(t, second, root.Children[1])

	_, ok := r.Tree().Get(first)
	require.False(t, ok)
}

func TestClassChangeDirtiesAndEvicts(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("ok", "primary")))
	r.ComputeStylesWithInheritance()

	btn, _ := r.GetByID("ok")
	require.False(t, btn.State.Dirty)
	require.Contains(t, r.styles, btn.ID)

	r.Build(app(button("ok", "danger")))

	btn2, _ := r.GetByID("ok")
	require.Equal(t, btn.ID, btn2.ID)
	require.True(t, btn2.State.Dirty)
	require.NotContains(t, r.styles, btn2.ID)
	require.Equal(t, []string{"danger"}, btn2.Meta.Classes)
}

func TestElementIDWithNewWidgetTypeRecreates(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("x")))
	old, _ := r.GetByID("x")

	r.Build(app(testView{widget: "Text", id: "x"}))

	fresh, ok := r.GetByID("x")
	require.True(t, ok)
	require.Equal(t, "Text", fresh.Meta.Widget)
	require.NotEqual(t, old.ID, fresh.ID)
	_, ok = r.Tree().Get(old.ID)
	require.False(t, ok)
}

func TestIrreconcilableRootFallsBackToFreshBuild(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("ok")))
	r.ComputeStylesWithInheritance()

	r.Build(testView{widget: "Screen", id: "app", kids: []view.View{button("ok")}})

	root, ok := r.Tree().Get(r.Tree().RootID())
	require.True(t, ok)
	require.Equal(t, "Screen", root.Meta.Widget)
	require.Equal(t, 2, r.Tree().Len())
	// Handles restart from zero, so the old style cache must be gone.
	require.Empty(t, r.styles)
}

func TestRemovalPurgesIndexAndCache(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("a"), stack(text("deep"))))
	r.ComputeStylesWithInheritance()

	deep, _ := r.GetByID("deep")

	r.Build(app(button("a")))

	require.Equal(t, 2, r.Tree().Len())
	_, ok := r.GetByID("deep")
	require.False(t, ok)
	require.NotContains(t, r.styles, deep.ID)
}

func TestBuildSkipsNothingOnEmptyChildren(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("a")))
	r.Build(app())

	root, _ := r.Tree().Get(r.Tree().RootID())
	require.Empty(t, root.Children)
	require.Equal(t, 1, r.Tree().Len())
}
