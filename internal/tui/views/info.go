package views

import (
	_ "embed"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/questclock/questclock/internal/tui"
)

//go:embed info.md
var infoText string

// InfoModel is the help screen.
type InfoModel struct {
	rendered map[int]string
}

// NewInfoModel creates the help screen.
func NewInfoModel() InfoModel {
	return InfoModel{rendered: make(map[int]string)}
}

// Update returns to HISTORY on any key. Navigation keys are handled by the
// router before they get here.
func (m InfoModel) Update(msg tea.Msg) (InfoModel, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tui.Navigate(tui.ViewHistory)
	}
	return m, nil
}

// Markdown renders the help text for width columns. Renders are cached per
// width.
func (m InfoModel) Markdown(width int) string {
	width = max(width, 20)
	if cached, ok := m.rendered[width]; ok {
		return cached
	}
	out := infoText
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if formatted, err := renderer.Render(infoText); err == nil {
			out = formatted
		}
	}
	out = strings.Trim(out, "\n")
	if m.rendered != nil {
		m.rendered[width] = out
	}
	return out
}

// View renders the help screen.
func (m InfoModel) View(f Frame) string {
	c := f.canvas()
	c.PutBlock(1, 0, m.Markdown(f.Width-4))
	footer(c, f)
	return c.Render()
}
