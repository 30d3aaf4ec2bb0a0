package main

import (
	"strings"

	"abandon/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// breadcrumbSep joins the category trail in the title
const breadcrumbSep = " > "

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	bodyHeight := max(1, m.height-6) // header + status + help + newlines
	switch m.screen {
	case ScreenRunning:
		b.WriteString(m.center(m.renderRunning(), bodyHeight))
	case ScreenOutput, ScreenPreview:
		b.WriteString(m.center(m.popup.View(), bodyHeight))
	case ScreenHelp:
		b.WriteString(m.center(m.renderHelp(), bodyHeight))
	default:
		m.list.Title = strings.Join(m.nav.Breadcrumbs(), breadcrumbSep)
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("🕹  Abandon")
	ver := ui.MutedStyle.Render("v" + version)
	path := ui.MutedStyle.Render("  " + m.nav.CurrentDir())

	gitInfo := ""
	if m.revision != "" {
		gitInfo = ui.MutedStyle.Render(" [" + m.revision + "]")
	}

	return ui.HeaderStyle.Render(title + "  " + ver + path + gitInfo)
}

// renderRunning is the dialog shown while a launched program runs
func (m *Model) renderRunning() string {
	name := ""
	if d := m.nav.Launching(); d != nil {
		name = d.Name
	}

	var content strings.Builder
	content.WriteString(m.spinner.View() + " " + ui.TitleStyle.Render("Running "+name))
	content.WriteString("\n\n")
	content.WriteString(ui.MutedStyle.Render("Input resumes when the program exits"))

	return ui.DialogStyle.Render(content.String())
}

func (m *Model) renderHelp() string {
	h := m.help
	h.ShowAll = true

	var content strings.Builder
	content.WriteString(ui.TitleStyle.Render("Keys"))
	content.WriteString("\n\n")
	content.WriteString(h.View(m.keys))
	content.WriteString("\n\n")
	content.WriteString(ui.MutedStyle.Render("Esc or ? to close"))

	return ui.DialogStyle.Render(content.String())
}

func (m *Model) renderStatusBar() string {
	styledStatus := ui.StatusTextStyle.Render(m.status)
	switch {
	case strings.HasPrefix(m.status, "✓"):
		styledStatus = ui.RenderNotification("success", strings.TrimPrefix(m.status, "✓ "))
	case strings.HasPrefix(m.status, "Error"):
		styledStatus = ui.RenderNotification("error", m.status)
	case strings.HasPrefix(m.status, "Catalog changed"):
		styledStatus = ui.RenderNotification("info", m.status)
	}
	return ui.StatusBarStyle.Render(styledStatus)
}

func (m *Model) renderHelpBar() string {
	var helpItems []string
	switch m.screen {
	case ScreenRunning:
		helpItems = []string{ui.RenderHelpItem("", "waiting for the program to exit")}
	case ScreenOutput, ScreenPreview:
		helpItems = []string{
			ui.RenderHelpItem("↑/↓", "scroll"),
			ui.RenderHelpItem("PgUp/Dn", "page"),
			ui.RenderHelpItem("Enter/Esc", "close"),
		}
	case ScreenHelp:
		helpItems = []string{ui.RenderHelpItem("Esc", "close")}
	default:
		return ui.HelpBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return ui.HelpBarStyle.Render(strings.Join(helpItems, "  "))
}

// center places a box in the middle of the body area
func (m *Model) center(box string, height int) string {
	return lipgloss.Place(max(1, m.width-2), height, lipgloss.Center, lipgloss.Center, box)
}
