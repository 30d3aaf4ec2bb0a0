package ui

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter provides syntax highlighting for catalog files
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter creates a new syntax highlighter
func NewHighlighter() *Highlighter {
	return &Highlighter{
		style: styles.Get("catppuccin-mocha"),
	}
}

// HighlightLine highlights a single line based on the file it came from
func (h *Highlighter) HighlightLine(line, filename string) string {
	lexer := getLexerForFile(filename)
	if lexer == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var result strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		style := h.style.Get(token.Type)
		text := token.Value

		if style.Colour.IsSet() {
			styled := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Colour.String()))
			if style.Bold == chroma.Yes {
				styled = styled.Bold(true)
			}
			if style.Italic == chroma.Yes {
				styled = styled.Italic(true)
			}
			result.WriteString(styled.Render(text))
		} else {
			result.WriteString(text)
		}
	}

	return result.String()
}

// HighlightLines highlights multiple lines
func (h *Highlighter) HighlightLines(lines []string, filename string) []string {
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = h.HighlightLine(line, filename)
	}
	return result
}

// getLexerForFile returns the appropriate lexer for a filename
func getLexerForFile(filename string) chroma.Lexer {
	base := strings.ToLower(filepath.Base(filename))
	switch base {
	case "abandon.info":
		// key: value lines read well as YAML
		return lexers.Get("yaml")
	case "abandon.conf", "dosbox.conf":
		return lexers.Get("ini")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return lexers.Get("yaml")
	case ".conf", ".cfg", ".ini":
		return lexers.Get("ini")
	case ".bat":
		return lexers.Get("batch")
	case ".sh":
		return lexers.Get("bash")
	}

	return nil
}

// GetFileType returns a human-readable file type for display
func GetFileType(filename string) string {
	base := strings.ToLower(filepath.Base(filename))
	switch base {
	case "abandon.info":
		return "Descriptor"
	case "abandon.conf", "dosbox.conf":
		return "DOSBox config"
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "YAML"
	case ".conf", ".cfg", ".ini":
		return "Config"
	case ".bat":
		return "Batch"
	case ".sh":
		return "Shell"
	default:
		return "Text"
	}
}
