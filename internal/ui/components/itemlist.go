package components

import (
	"fmt"
	"strings"

	"abandon/internal/descriptor"
	"abandon/internal/navigator"
	"abandon/internal/registry"
	"abandon/internal/ui"
)

// RowKind tells the shell what selecting a row does
type RowKind int

const (
	RowCategory RowKind = iota
	RowGame
	RowError
	RowBack
	RowQuit
)

// Row is one selectable line of the catalog list
type Row struct {
	Kind  RowKind
	Label string
	Tag   string                 // Family of a game, shown after the label
	Entry *descriptor.Descriptor // Set for categories and games
}

// ItemList is the catalog list: entries, then scan errors, then actions
type ItemList struct {
	Rows   []Row
	Cursor int
	Width  int
	Height int
	Title  string
}

// NewItemList creates an empty list
func NewItemList() *ItemList {
	return &ItemList{
		Width:  60,
		Height: 20,
	}
}

// BuildRows lays out a directory listing as rows. The Back row only
// appears below the root.
func BuildRows(items []*descriptor.Descriptor, errs []navigator.ScanError, canGoBack bool) []Row {
	rows := make([]Row, 0, len(items)+len(errs)+2)
	for _, d := range items {
		row := Row{Kind: RowGame, Label: d.Name, Entry: d}
		if d.IsCategory {
			row.Kind = RowCategory
		} else if fam, ok := registry.FamilyOf(d.Type); ok {
			row.Tag = fam.String()
		}
		rows = append(rows, row)
	}
	for _, e := range errs {
		rows = append(rows, Row{Kind: RowError, Label: fmt.Sprintf("Error in %s: %s", e.Dir, e.Message)})
	}
	if canGoBack {
		rows = append(rows, Row{Kind: RowBack, Label: "Back..."})
	}
	rows = append(rows, Row{Kind: RowQuit, Label: "Quit..."})
	return rows
}

// SetRows replaces the rows and puts the cursor on row cursor, or on the
// first row when cursor is out of range
func (l *ItemList) SetRows(rows []Row, cursor int) {
	l.Rows = rows
	l.Cursor = cursor
	if cursor < 0 || cursor >= len(rows) {
		l.Cursor = 0
	}
}

// KeepCursor replaces the rows, keeping the cursor on the same entry if it
// is still present
func (l *ItemList) KeepCursor(rows []Row) {
	var current *descriptor.Descriptor
	if r := l.Current(); r != nil {
		current = r.Entry
	}
	l.Rows = rows
	if current != nil {
		for i, r := range rows {
			if r.Entry != nil && r.Entry.BaseDir == current.BaseDir {
				l.Cursor = i
				return
			}
		}
	}
	if l.Cursor >= len(rows) {
		l.Cursor = max(0, len(rows)-1)
	}
}

// MoveUp moves cursor up
func (l *ItemList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *ItemList) MoveDown() {
	if l.Cursor < len(l.Rows)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *ItemList) PageUp() {
	l.Cursor -= l.pageSize()
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *ItemList) PageDown() {
	l.Cursor += l.pageSize()
	if l.Cursor >= len(l.Rows) {
		l.Cursor = max(0, len(l.Rows)-1)
	}
}

// GoToFirst moves cursor to the first row
func (l *ItemList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last row
func (l *ItemList) GoToLast() {
	if len(l.Rows) > 0 {
		l.Cursor = len(l.Rows) - 1
	}
}

// Current returns the row under the cursor
func (l *ItemList) Current() *Row {
	if l.Cursor >= 0 && l.Cursor < len(l.Rows) {
		return &l.Rows[l.Cursor]
	}
	return nil
}

func (l *ItemList) pageSize() int {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize
}

// View renders the list
func (l *ItemList) View() string {
	var b strings.Builder

	if l.Title != "" {
		b.WriteString(ui.BreadcrumbStyle.Render(l.Title))
		b.WriteString("\n")
		b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, l.Width-4))))
		b.WriteString("\n")
	}

	// Calculate visible range
	visibleHeight := max(1, l.Height-3)
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.Rows))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderRow(l.Rows[i], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(l.Rows) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return ui.PanelStyle.Width(l.Width).Render(b.String())
}

// renderRow renders a single row
func (l *ItemList) renderRow(r Row, isCursor bool) string {
	label := r.Label
	maxLen := l.Width - 8
	if maxLen < 10 {
		maxLen = 10
	}
	if len([]rune(label)) > maxLen {
		label = string([]rune(label)[:maxLen-3]) + "..."
	}

	var content string
	switch r.Kind {
	case RowCategory:
		content = ui.CategoryStyle.Render("▸ " + label)
	case RowGame:
		content = ui.GameStyle.Render("  " + label)
		if r.Tag != "" {
			content += ui.MutedStyle.Render("  " + r.Tag)
		}
	case RowError:
		content = ui.EntryErrorStyle.Render("! " + label)
	default:
		content = ui.ActionStyle.Render("  " + label)
	}

	if isCursor {
		return ui.SelectedItemStyle.Width(max(0, l.Width-4)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}
