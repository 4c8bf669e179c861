// Package structparse 提取 Go 结构体声明的字段信息。
//
// 本包只做语法层面的分析，不做类型检查：
//
//  1. 字段解析 - 按声明顺序提取字段名、类型源码和标签，a, b int 会拆成两个字段
//  2. 泛型参数 - 提取类型参数及其约束
//  3. 方法收集 - 扫描同一目录下的非测试文件，收集结构体的方法
//
// # 基本用法
//
//	info, err := structparse.ParseStruct("path/to/file.go", "Person")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, field := range info.Fields {
//	    fmt.Printf("  字段: %s %s\n", field.Name, field.Type)
//	}
//
// 已经持有 AST 时使用 ParseTypeSpec，避免重复解析文件。
//
// # 限制
//
//   - 匿名嵌入字段不展开，作为普通字段返回，字段名取类型名
//   - 字段类型保留源码文本，不解析到定义处
package structparse
