package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/hawk90/revue/internal/logger"
	"github.com/hawk90/revue/internal/tui"
	"github.com/hawk90/revue/pkg/css"
	"github.com/hawk90/revue/pkg/theme"
	"github.com/hawk90/revue/pkg/view"
	"github.com/hawk90/revue/pkg/widgets"
)

// defaultSheet styles the gallery when no theme or stylesheet is supplied.
const defaultSheet = `
Stack#root { padding: 1 2; gap: 1 }
#title { font-weight: bold; text-decoration: underline }
Button { color: #7aa2f7 }
Button:focus { font-weight: bold; color: #ff9e64 }
Checkbox:focus { font-weight: bold }
.hint { faint: true }
`

func runGallery(flags *rootFlags) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("revue needs an interactive terminal; use 'revue check' to validate stylesheets")
	}

	sheet, err := loadSheet(flags)
	if err != nil {
		return err
	}

	level := "info"
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Pretty: true})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	model := tui.NewModel(tui.Options{
		Sheet:     sheet,
		Build:     buildGallery,
		Focusable: []string{"apply", "cancel", "wrap", "unicode"},
		Logger:    log,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// loadSheet resolves the stylesheet from the flags: YAML theme first, raw
// CSS second, built-in default last.
func loadSheet(flags *rootFlags) (*css.StyleSheet, error) {
	switch {
	case flags.themePath != "":
		th, err := theme.Load(flags.themePath)
		if err != nil {
			return nil, err
		}
		return th.Compile()
	case flags.cssPath != "":
		data, err := os.ReadFile(flags.cssPath)
		if err != nil {
			return nil, err
		}
		return css.Parse(string(data))
	default:
		return css.Parse(defaultSheet)
	}
}

func buildGallery(s tui.State) view.View {
	return widgets.Stack{ID: "root", Items: []view.View{
		widgets.Text{ID: "title", Content: "revue widget gallery"},
		widgets.Stack{ID: "actions", Horizontal: true, Items: []view.View{
			widgets.Button{ID: "apply", Label: "Apply"},
			widgets.Button{ID: "cancel", Label: "Cancel"},
		}},
		widgets.Checkbox{ID: "wrap", Label: "wrap long lines", Checked: s.Checked["wrap"]},
		widgets.Checkbox{ID: "unicode", Label: "unicode borders", Checked: s.Checked["unicode"]},
		widgets.Text{ID: "hint", Classes: []string{"hint"}, Content: "tab: move  space: toggle  q: quit"},
	}}
}
