// Package format pretty-prints response bodies for the output panel.
//
// Formatting is best effort. Each formatter either produces text or
// reports that it does not apply, and Output falls back to the raw body
// when none of them does.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/beevik/etree"
)

const indentWidth = 2

var (
	errEmpty  = errors.New("empty input")
	errNoRoot = errors.New("xml document has no root element")
)

type Formatter func(raw string) (string, error)

func Output(raw string) string {
	return Cascade(raw, JSON, XML)
}

// Cascade returns the first non-empty result, or raw when every formatter
// fails.
func Cascade(raw string, formatters ...Formatter) string {
	for _, f := range formatters {
		if f == nil {
			continue
		}
		out, err := f(raw)
		if err != nil || out == "" {
			continue
		}
		return out
	}
	return raw
}

// JSON indents raw without re-encoding it, so number text, key order
// and escapes are kept as the server sent them.
func JSON(raw string) (string, error) {
	src := strings.TrimSpace(raw)
	if src == "" {
		return "", errEmpty
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(src), "", strings.Repeat(" ", indentWidth)); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func XML(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errEmpty
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return "", err
	}
	if doc.Root() == nil {
		return "", errNoRoot
	}
	doc.Indent(indentWidth)
	out, err := doc.WriteToString()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LexerFor picks a chroma lexer name for text that Output produced.
func LexerFor(text string) string {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return ""
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		if json.Valid([]byte(trimmed)) {
			return "json"
		}
	case strings.HasPrefix(trimmed, "<"):
		return "xml"
	}
	return ""
}
