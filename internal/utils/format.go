package utils

import (
	"fmt"

	"golang.org/x/tools/imports"
)

// FormatSource 整理 import 并格式化生成的代码
func FormatSource(filename string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("格式化 %s 失败: %w", filename, err)
	}
	return formatted, nil
}

// CheckSyntax 只检查语法并格式化，不解析 import
func CheckSyntax(filename string, src []byte) error {
	_, err := imports.Process(filename, src, &imports.Options{
		Comments:   true,
		FormatOnly: true,
	})
	return err
}
