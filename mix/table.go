package mix

import (
	"fmt"

	"github.com/donutnomad/strunemix/internal/table"
)

// Table 以文本表格展示 Form 的当前状态，用于调试输出
func (f *Form[N, D, M]) Table() string {
	rows := make([][]string, 0, f.Len())
	for name, e := range f.All() {
		value := "-"
		if e.Set {
			value = fmt.Sprintf("%v", e.Data.AttrValue())
		}
		rows = append(rows, []string{name.Label(), value, fmt.Sprintf("%+v", e.Meta)})
	}
	return table.Render([]string{"field", "value", "meta"}, rows)
}
