// Package table 按显示宽度对齐的文本表格
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render 渲染按显示宽度对齐的文本表格，中文等宽字符按两列计算
//
//	label | variant | type
//	------+---------+-------
//	name  | Name    | string
func Render(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i > 0 {
				sb.WriteString(" | ")
			}
			if i == len(widths)-1 {
				sb.WriteString(cell)
			} else {
				sb.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(header)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("-+-")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
