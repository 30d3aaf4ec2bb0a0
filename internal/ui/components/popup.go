package components

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"abandon/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxPreviewSize keeps huge files out of the viewport
const maxPreviewSize = 256 * 1024

// Popup is a scrollable overlay for program output and file previews
type Popup struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter

	Title      string
	TotalLines int
	Visible    bool

	// Dimensions
	Width  int
	Height int

	lineNumStyle lipgloss.Style
	infoStyle    lipgloss.Style
}

// NewPopup creates a hidden popup
func NewPopup() *Popup {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Popup{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		Width:       80,
		Height:      20,
		lineNumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Width(4).
			Align(lipgloss.Right),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
	}
}

// SetSize sizes the popup to a share of the screen
func (p *Popup) SetSize(screenWidth, screenHeight int) {
	p.Width = max(60, screenWidth*90/100)
	p.Height = max(5, screenHeight*90/100)
	p.Width = min(p.Width, max(1, screenWidth-2))
	p.Height = min(p.Height, max(1, screenHeight-2))

	// Account for title, separator, footer and border
	p.viewport.Width = max(20, p.Width-4)
	p.viewport.Height = max(3, p.Height-6)
}

// ShowLines displays captured program output
func (p *Popup) ShowLines(title string, lines []string) {
	p.Title = title
	p.TotalLines = len(lines)
	p.viewport.SetContent(strings.Join(lines, "\n"))
	p.viewport.GotoTop()
	p.Visible = true
}

// ShowFile displays a text file with line numbers and highlighting
func (p *Popup) ShowFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxPreviewSize {
		return fmt.Errorf("%s is too large to preview", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	highlighted := p.highlighter.HighlightLines(lines, path)

	var b strings.Builder
	for i, line := range highlighted {
		b.WriteString(p.lineNumStyle.Render(fmt.Sprintf("%d", i+1)) + " │ " + line)
		if i < len(highlighted)-1 {
			b.WriteString("\n")
		}
	}

	p.Title = fmt.Sprintf("%s  %s", ui.GetFileType(path), path)
	p.TotalLines = len(lines)
	p.viewport.SetContent(b.String())
	p.viewport.GotoTop()
	p.Visible = true
	return nil
}

// Hide closes the popup
func (p *Popup) Hide() {
	p.Visible = false
}

// Update handles messages for viewport scrolling
func (p *Popup) Update(msg tea.Msg) (*Popup, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the popup
func (p *Popup) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render(p.Title) + "\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, p.Width-4))) + "\n")
	b.WriteString(p.viewport.View())

	if p.TotalLines > p.viewport.Height {
		scrollInfo := fmt.Sprintf("─── %.0f%% ───", p.viewport.ScrollPercent()*100)
		b.WriteString("\n" + p.infoStyle.Render(scrollInfo))
	}
	b.WriteString("\n\n" + ui.RenderButton("OK", true))

	return ui.DialogStyle.Padding(0, 1).Width(p.Width).Render(b.String())
}
