package structparse

import (
	"go/token"
	"reflect"
	"strconv"
)

// ImportInfo 导入信息
type ImportInfo struct {
	Alias    string // 文件内使用的包名
	Path     string // 导入路径
	Explicit bool   // 是否显式写了别名
}

// TypeParam 结构体的泛型参数
type TypeParam struct {
	Name       string // 参数名，如 T
	Constraint string // 约束，如 any、comparable
}

// MethodInfo 方法信息
type MethodInfo struct {
	Name         string // 方法名
	ReceiverName string // 接收器名称
	ReceiverType string // 接收器类型（User 或 *User）
	FilePath     string // 方法所在的文件路径
}

// Pointer 是否为指针接收器
func (m MethodInfo) Pointer() bool {
	return len(m.ReceiverType) > 0 && m.ReceiverType[0] == '*'
}

// FieldInfo 字段信息
type FieldInfo struct {
	Name     string         // 字段名，匿名嵌入字段取类型名
	Type     string         // 字段类型的源码文本
	Tag      string         // 去掉反引号后的标签
	Embedded bool           // 是否为匿名嵌入字段
	Position token.Position // 字段在源文件中的位置
}

// Lookup 读取标签中 key 的值
func (f FieldInfo) Lookup(key string) (string, bool) {
	return reflect.StructTag(f.Tag).Lookup(key)
}

// Exported 字段是否导出
func (f FieldInfo) Exported() bool {
	return token.IsExported(f.Name)
}

// StructInfo 结构体信息
type StructInfo struct {
	Name        string
	PackageName string
	FilePath    string
	TypeParams  []TypeParam
	Fields      []FieldInfo
	Methods     []MethodInfo
	Imports     []ImportInfo
}

// IsGeneric 是否为泛型结构体
func (s *StructInfo) IsGeneric() bool {
	return len(s.TypeParams) > 0
}

// HasMethod 结构体（含指针接收器）是否已定义名为 name 的方法
func (s *StructInfo) HasMethod(name string) bool {
	for _, m := range s.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Field 按名称查找字段
func (s *StructInfo) Field(name string) (FieldInfo, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// unquoteTag 去掉结构体标签字面量的引号，非法字面量按空标签处理
func unquoteTag(lit string) string {
	tag, err := strconv.Unquote(lit)
	if err != nil {
		return ""
	}
	return tag
}
