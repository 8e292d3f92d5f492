// Package textutil holds small text helpers shared by the review and
// export layers.
package textutil

import (
	"strings"
	"unicode"
)

// CountWords counts words in a markdown string. Markdown syntax is
// stripped first so markers and fences do not inflate the count; the
// result is what a reader would count against a journal's word limit.
func CountWords(markdown string) int {
	text := stripMarkdown(markdown)

	count := 0
	for _, token := range strings.FieldsFunc(text, unicode.IsSpace) {
		if strings.TrimSpace(token) != "" {
			count++
		}
	}
	return count
}

func stripMarkdown(markdown string) string {
	text := removeCodeFences(markdown)

	for _, marker := range []string{"`", "**", "*", "__", "_", "~~", "#", ">", "---"} {
		text = strings.ReplaceAll(text, marker, "")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		// Numbered list markers ("1. ", "12. ")
		if j := strings.Index(line, ". "); j > 0 && j <= 3 && allDigits(line[:j]) {
			line = line[j+2:]
		}
		lines[i] = line
	}
	return strings.Join(lines, " ")
}

func removeCodeFences(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			return text
		}
		text = text[:start] + text[start+end+6:]
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
