package format

import (
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/muesli/termenv"
)

const highlightStyle = "monokai"

// Highlight colours text for terminal display. The stored output stays
// plain; this only feeds the viewport. Text that has no lexer, or a
// colourless terminal, comes back unchanged.
func Highlight(text string, profile termenv.Profile) string {
	lexer := LexerFor(text)
	formatter := terminalFormatter(profile)
	if lexer == "" || formatter == "" {
		return text
	}
	var sb strings.Builder
	if err := quick.Highlight(&sb, text, lexer, formatter, highlightStyle); err != nil {
		return text
	}
	return sb.String()
}

func terminalFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal"
	default:
		return ""
	}
}
