package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hawk90/revue/pkg/buffer"
	"github.com/hawk90/revue/pkg/css"
	"github.com/hawk90/revue/pkg/renderer"
	"github.com/hawk90/revue/pkg/view"
)

func bareContext(buf *buffer.Buffer) *view.Context {
	return view.NewContext(buf, buf.Bounds(), nil, nil, -1, nil)
}

func rows(buf *buffer.Buffer) []string {
	lines := strings.Split(buf.Content(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

func TestTextRender(t *testing.T) {
	t.Parallel()

	buf := buffer.New(10, 1)
	Text{Content: "hello"}.Render(bareContext(buf))
	require.Equal(t, []string{"hello"}, rows(buf))
}

func TestButtonRender(t *testing.T) {
	t.Parallel()

	buf := buffer.New(10, 1)
	Button{Label: "OK"}.Render(bareContext(buf))
	require.Equal(t, []string{"[ OK ]"}, rows(buf))
}

func TestCheckboxRender(t *testing.T) {
	t.Parallel()

	buf := buffer.New(12, 1)
	Checkbox{Label: "opt"}.Render(bareContext(buf))
	require.Equal(t, []string{"[ ] opt"}, rows(buf))

	buf.Clear()
	Checkbox{Label: "opt", Checked: true}.Render(bareContext(buf))
	require.Equal(t, []string{"[x] opt"}, rows(buf))
}

func TestTextClipsToArea(t *testing.T) {
	t.Parallel()

	buf := buffer.New(3, 1)
	Text{Content: "hello"}.Render(bareContext(buf))
	require.Equal(t, []string{"hel"}, rows(buf))
}

func TestStackVerticalLayout(t *testing.T) {
	t.Parallel()

	root := Stack{ID: "root", Items: []view.View{
		Text{Content: "one"},
		Text{Content: "two"},
	}}

	r := renderer.New(nil)
	r.Build(root)

	buf := buffer.New(8, 3)
	r.Render(root, buf, buf.Bounds())
	require.Equal(t, []string{"one", "two", ""}, rows(buf))
}

func TestStackGapFromStyle(t *testing.T) {
	t.Parallel()

	root := Stack{ID: "root", Items: []view.View{
		Text{Content: "one"},
		Text{Content: "two"},
	}}

	r := renderer.New(css.MustParse(`Stack { gap: 1 }`))
	r.Build(root)

	buf := buffer.New(8, 3)
	r.Render(root, buf, buf.Bounds())
	require.Equal(t, []string{"one", "", "two"}, rows(buf))
}

func TestStackHorizontalLayout(t *testing.T) {
	t.Parallel()

	root := Stack{ID: "root", Horizontal: true, Items: []view.View{
		Text{Content: "ab"},
		Text{Content: "cd"},
	}}

	r := renderer.New(nil)
	r.Build(root)

	buf := buffer.New(8, 1)
	r.Render(root, buf, buf.Bounds())
	require.Equal(t, []string{"abcd"}, rows(buf))
}

func TestStackChildStyleHeightWins(t *testing.T) {
	t.Parallel()

	root := Stack{ID: "root", Items: []view.View{
		Text{ID: "first", Content: "one"},
		Text{Content: "two"},
	}}

	r := renderer.New(css.MustParse(`#first { height: 2 }`))
	r.Build(root)

	buf := buffer.New(8, 3)
	r.Render(root, buf, buf.Bounds())
	require.Equal(t, []string{"one", "", "two"}, rows(buf))
}

func TestHiddenWidgetDrawsNothing(t *testing.T) {
	t.Parallel()

	root := Stack{ID: "root", Items: []view.View{
		Text{ID: "gone", Content: "one"},
		Text{Content: "two"},
	}}

	r := renderer.New(css.MustParse(`#gone { visibility: hidden }`))
	r.Build(root)

	buf := buffer.New(8, 2)
	r.Render(root, buf, buf.Bounds())
	// The hidden child keeps its slot but paints nothing into it.
	require.Equal(t, []string{"", "two"}, rows(buf))
}

func TestStyledTextCarriesAttributes(t *testing.T) {
	t.Parallel()

	root := Stack{ID: "root", Items: []view.View{
		Text{ID: "title", Content: "hi"},
	}}

	r := renderer.New(css.MustParse(`#title { color: #ff0000; font-weight: bold }`))
	r.Build(root)

	buf := buffer.New(4, 1)
	r.Render(root, buf, buf.Bounds())

	cell, ok := buf.At(0, 0)
	require.True(t, ok)
	require.Equal(t, 'h', cell.Rune)
	require.True(t, cell.Bold)
	require.Equal(t, "#ff0000", string(cell.Fg))
}

func TestPreferredSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		widget Sizer
		width  int
		height int
	}{
		{"text", Text{Content: "abc"}, 3, 1},
		{"wide text", Text{Content: "世界"}, 4, 1},
		{"button", Button{Label: "OK"}, 6, 1},
		{"checkbox", Checkbox{Label: "opt"}, 7, 1},
		{"vertical stack", Stack{Items: []view.View{Text{Content: "abc"}, Text{Content: "d"}}}, 3, 2},
		{"horizontal stack", Stack{Horizontal: true, Items: []view.View{Text{Content: "abc"}, Text{Content: "d"}}}, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h := tt.widget.PreferredSize()
			require.Equal(t, tt.width, w)
			require.Equal(t, tt.height, h)
		})
	}
}
