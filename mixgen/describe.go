package mixgen

import (
	"fmt"
	"strings"

	"github.com/donutnomad/strunemix/internal/table"
)

// Describe 渲染结构体的字段表，跳过的字段排在最后
//
//	Person (2 个字段, 可重建)
//	label | variant | type   | skipped
//	------+---------+--------+--------
//	name  | Name    | string |
func Describe(m *Model) string {
	rows := make([][]string, 0, len(m.Fields)+len(m.Skipped))
	for _, f := range m.Fields {
		rows = append(rows, []string{f.Label, f.Variant, f.Type, ""})
	}
	for _, f := range m.Skipped {
		rows = append(rows, []string{"-", "-", f.Type, f.Name})
	}

	var sb strings.Builder
	rebuild := "可重建"
	if !m.CanRebuild() {
		rebuild = "不可重建"
	}
	fmt.Fprintf(&sb, "%s (%d 个字段, %s)\n", m.Name, m.Count(), rebuild)
	sb.WriteString(table.Render([]string{"label", "variant", "type", "skipped"}, rows))
	return sb.String()
}
