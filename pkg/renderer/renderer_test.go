package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hawk90/revue/pkg/buffer"
	"github.com/hawk90/revue/pkg/css"
	"github.com/hawk90/revue/pkg/style"
	"github.com/hawk90/revue/pkg/view"
)

func TestComputeStylesWithInheritanceResolvesCascade(t *testing.T) {
	t.Parallel()

	sheet := css.MustParse(`
		App { color: #ff0000 }
		Button { font-weight: bold }
	`)
	r := New(sheet)
	r.Build(app(button("ok")))
	r.ComputeStylesWithInheritance()

	btn, _ := r.GetByID("ok")
	resolved, ok := r.StyleForWithInheritance(btn.ID)
	require.True(t, ok)
	require.True(t, resolved.Bold)
	require.Equal(t, style.Color("#ff0000"), resolved.Foreground)
	require.False(t, btn.State.Dirty)
}

func TestStylePassMatchesFromScratchResolution(t *testing.T) {
	t.Parallel()

	sheet := css.MustParse(`
		App { color: #00ff00; background: #111111 }
		Stack > Button { font-style: italic }
		#ok { text-decoration: underline }
	`)
	r := New(sheet)
	r.Build(app(stack(button("ok"), button("cancel"))))
	r.ComputeStylesWithInheritance()

	resolver := style.NewResolver(sheet)
	for _, node := range r.Tree().Nodes() {
		cached, ok := r.StyleForWithInheritance(node.ID)
		require.True(t, ok)

		var parent *style.Style
		if node.Parent.IsValid() {
			p, ok := r.StyleForWithInheritance(node.Parent)
			require.True(t, ok)
			parent = &p
		}
		fresh := resolver.ComputeStyleWithParent(node, parent, r.Tree().Lookup)
		require.Equal(t, fresh, cached, "node %d diverged from from-scratch resolution", node.ID)
	}
}

func TestStylePassIsIdempotent(t *testing.T) {
	t.Parallel()

	r := New(css.MustParse(`Text { color: #ffffff }`))
	r.Build(app(text("t1"), text("t2")))

	r.ComputeStylesWithInheritance()
	first := make(map[int]style.Style)
	for id, s := range r.styles {
		first[int(id)] = s
	}

	r.ComputeStylesWithInheritance()
	require.Len(t, r.styles, len(first))
	for id, s := range r.styles {
		require.Equal(t, first[int(id)], s)
	}
	for _, node := range r.Tree().Nodes() {
		require.False(t, node.State.Dirty)
	}
}

func TestSetFocusEvictsBothHolders(t *testing.T) {
	t.Parallel()

	r := New(css.MustParse(`Button:focus { font-weight: bold }`))
	r.Build(app(button("a"), button("b")))
	r.ComputeStylesWithInheritance()

	r.SetFocus("a")
	a, _ := r.GetByID("a")
	require.True(t, a.State.Focused)
	require.True(t, a.State.Dirty)
	require.NotContains(t, r.styles, a.ID)

	sa, ok := r.StyleForWithInheritance(a.ID)
	require.True(t, ok)
	require.True(t, sa.Bold)

	r.SetFocus("b")
	b, _ := r.GetByID("b")
	require.False(t, a.State.Focused)
	require.True(t, b.State.Focused)
	// Both the node losing focus and the node gaining it are evicted.
	require.NotContains(t, r.styles, a.ID)
	require.NotContains(t, r.styles, b.ID)

	sa, _ = r.StyleForWithInheritance(a.ID)
	require.False(t, sa.Bold)
	sb, _ := r.StyleForWithInheritance(b.ID)
	require.True(t, sb.Bold)
}

func TestSetFocusEmptyClearsFocus(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("a")))
	r.SetFocus("a")
	r.SetFocus("")

	a, _ := r.GetByID("a")
	require.False(t, a.State.Focused)
	require.False(t, r.Tree().Focused().IsValid())
}

func TestSetHoverEvictsBothHolders(t *testing.T) {
	t.Parallel()

	r := New(css.MustParse(`Button:hover { color: #ff00ff }`))
	r.Build(app(button("a"), button("b")))
	r.ComputeStylesWithInheritance()

	r.SetHover("a")
	r.SetHover("b")

	a, _ := r.GetByID("a")
	b, _ := r.GetByID("b")
	require.False(t, a.State.Hovered)
	require.True(t, b.State.Hovered)

	sa, _ := r.StyleForWithInheritance(a.ID)
	require.Equal(t, style.Color(""), sa.Foreground)
	sb, _ := r.StyleForWithInheritance(b.ID)
	require.Equal(t, style.Color("#ff00ff"), sb.Foreground)
}

func TestSetDisabledEvictsHolder(t *testing.T) {
	t.Parallel()

	r := New(css.MustParse(`Button:disabled { faint: true }`))
	r.Build(app(button("ok")))
	r.ComputeStylesWithInheritance()

	r.SetDisabled("ok", true)
	btn, _ := r.GetByID("ok")
	require.True(t, btn.State.Disabled)
	require.NotContains(t, r.styles, btn.ID)

	resolved, _ := r.StyleForWithInheritance(btn.ID)
	require.True(t, resolved.Faint)

	r.SetDisabled("ok", false)
	resolved, _ = r.StyleForWithInheritance(btn.ID)
	require.False(t, resolved.Faint)
}

func TestSetStylesheetClearsWholeCache(t *testing.T) {
	t.Parallel()

	r := New(css.MustParse(`Button { font-weight: bold }`))
	r.Build(app(button("ok")))
	r.ComputeStylesWithInheritance()
	require.NotEmpty(t, r.styles)

	r.SetStylesheet(css.MustParse(`Button { font-style: italic }`))
	require.Empty(t, r.styles)

	btn, _ := r.GetByID("ok")
	resolved, ok := r.StyleForWithInheritance(btn.ID)
	require.True(t, ok)
	require.False(t, resolved.Bold)
	require.True(t, resolved.Italic)
}

func TestStyleForMissingNode(t *testing.T) {
	t.Parallel()

	r := New(nil)
	_, ok := r.StyleFor(99)
	require.False(t, ok)
	_, ok = r.StyleForWithInheritance(99)
	require.False(t, ok)
}

func TestQueryMatchesInHandleOrder(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(stack(button("a", "primary"), button("b")), button("c", "primary")))

	buttons, err := r.Query("Button")
	require.NoError(t, err)
	require.Len(t, buttons, 3)

	primary, err := r.Query(".primary")
	require.NoError(t, err)
	require.Len(t, primary, 2)
	require.Equal(t, "a", primary[0].Meta.ID)
	require.Equal(t, "c", primary[1].Meta.ID)

	nested, err := r.Query("Stack > Button")
	require.NoError(t, err)
	require.Len(t, nested, 2)

	none, err := r.Query("Checkbox")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestQueryRejectsMalformedSelector(t *testing.T) {
	t.Parallel()

	r := New(nil)
	_, err := r.Query("> Button")
	require.Error(t, err)
}

func TestQueryOne(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Build(app(button("a"), button("b")))

	node, found, err := r.QueryOne("#b")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "b", node.Meta.ID)

	_, found, err = r.QueryOne("#missing")
	require.NoError(t, err)
	require.False(t, found)
}

// recordingView captures the context it was rendered with.
type recordingView struct {
	testView
	got **view.Context
}

func (v recordingView) Render(ctx *view.Context) { *v.got = ctx }

func TestRenderPassesResolvedRootStyle(t *testing.T) {
	t.Parallel()

	var got *view.Context
	root := recordingView{
		testView: testView{widget: "App", id: "app"},
		got:      &got,
	}

	r := New(css.MustParse(`App { color: #ff0000 }`))
	r.Build(root)

	buf := buffer.New(10, 3)
	r.Render(root, buf, buf.Bounds())

	require.NotNil(t, got)
	require.NotNil(t, got.Style)
	require.Equal(t, style.Color("#ff0000"), got.Style.Foreground)
	require.NotNil(t, got.State)
}

func TestRenderEmptyTreeUsesBareContext(t *testing.T) {
	t.Parallel()

	var got *view.Context
	root := recordingView{
		testView: testView{widget: "App"},
		got:      &got,
	}

	r := New(nil)
	buf := buffer.New(4, 2)
	r.Render(root, buf, buf.Bounds())

	require.NotNil(t, got)
	require.Nil(t, got.Style)
	require.Nil(t, got.State)
}

func TestChildContextCarriesChildStyle(t *testing.T) {
	t.Parallel()

	var got *view.Context
	root := recordingView{
		testView: testView{
			widget: "App",
			id:     "app",
			kids:   []view.View{button("ok")},
		},
		got: &got,
	}

	r := New(css.MustParse(`Button { font-weight: bold }`))
	r.Build(root)

	buf := buffer.New(10, 3)
	r.Render(root, buf, buf.Bounds())
	require.NotNil(t, got)

	child := got.Child(0, buffer.Rect{X: 0, Y: 0, Width: 5, Height: 1})
	require.NotNil(t, child.Style)
	require.True(t, child.Style.Bold)

	// Out-of-range children fall back to a bare context.
	bare := got.Child(5, buffer.Rect{})
	require.Nil(t, bare.Style)
}
