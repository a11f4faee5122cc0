package renderers

import (
	"strings"
)

type MarkdownRenderer struct{}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// escapeCell 表格单元格中的 | 和换行会破坏表格结构
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return "-"
	}
	return s
}

// RenderTable renders a GitHub-flavored Markdown table.
func (r *MarkdownRenderer) RenderTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("|")
	for _, h := range headers {
		b.WriteString(" " + escapeCell(h) + " |")
	}
	b.WriteString("\n|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString("|")
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(" " + escapeCell(cell) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *MarkdownRenderer) RenderCode(s string) string {
	if s == "" {
		return ""
	}
	return "`" + strings.ReplaceAll(s, "`", "'") + "`"
}

func (r *MarkdownRenderer) StatusIcon(status string) string {
	switch status {
	case "converted":
		return "🟢"
	case "skipped":
		return "⚪"
	case "failed":
		return "🔴"
	default:
		return "🟡"
	}
}
