package render

import (
	"fmt"
	"strings"

	"github.com/yosephbernandus/pdf-parser/model"
)

// ElementsToText renders classified layout elements as plain text.
// Headings and paragraphs emit their text, tables render aligned, and
// blocks are separated by blank lines. Non-empty output ends with
// exactly one newline.
func ElementsToText(elements []model.Element) string {
	var sb strings.Builder

	for _, el := range elements {
		switch el := el.(type) {
		case model.Heading:
			sb.WriteString(el.Text)
		case model.Paragraph:
			sb.WriteString(el.Text)
		case model.TableBlock:
			sb.WriteString(TableToAlignedText(el.Table))
		}
		sb.WriteString("\n\n")
	}

	return finishBlock(sb.String())
}

// ElementsToMarkdown renders classified layout elements as Markdown:
// #-prefixed headings, blank-line-separated paragraphs, and pipe
// tables. Non-empty output ends with exactly one newline.
func ElementsToMarkdown(elements []model.Element) string {
	var sb strings.Builder

	for _, el := range elements {
		switch el := el.(type) {
		case model.Heading:
			level := el.Level
			if level < 1 {
				level = 1
			}
			sb.WriteString(strings.Repeat("#", level))
			sb.WriteString(" ")
			sb.WriteString(el.Text)
		case model.Paragraph:
			sb.WriteString(el.Text)
		case model.TableBlock:
			sb.WriteString(tableToMarkdown(el.Table))
		}
		sb.WriteString("\n\n")
	}

	return finishBlock(sb.String())
}

// tableToMarkdown renders one pipe table. The first row is the header,
// followed by a dash separator; cells are padded to the column's
// widest escaped cell (minimum 3, the separator's width) and pipes in
// cell text are escaped.
func tableToMarkdown(t model.Table) string {
	if t.IsEmpty() {
		return ""
	}

	widths := make([]int, t.NumColumns)
	for i := range widths {
		widths[i] = 3
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if n := len([]rune(escapePipe(cell))); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(markdownRow(t.Rows[0], widths))
	sb.WriteString("\n")

	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}

	for _, row := range t.Rows[1:] {
		sb.WriteString("\n")
		sb.WriteString(markdownRow(row, widths))
	}

	return sb.String()
}

func markdownRow(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, cell := range row {
		width := 3
		if i < len(widths) {
			width = widths[i]
		}
		fmt.Fprintf(&sb, " %s |", padRight(escapePipe(cell), width))
	}
	// Short rows still render every column.
	for i := len(row); i < len(widths); i++ {
		fmt.Fprintf(&sb, " %s |", padRight("", widths[i]))
	}
	return sb.String()
}

func escapePipe(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// finishBlock normalizes block output: trailing whitespace is trimmed,
// then non-empty output gets a single trailing newline.
func finishBlock(s string) string {
	trimmed := strings.TrimRight(s, " \t\r\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}
