package structparse

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// ParseStruct 解析指定文件中的结构体，并收集同一包内的方法
func ParseStruct(filename, structName string) (*StructInfo, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("解析文件失败: %w", err)
	}

	spec := findTypeSpec(node, structName)
	if spec == nil {
		return nil, fmt.Errorf("未找到结构体 %s", structName)
	}

	info, err := ParseTypeSpec(fset, node, spec, filename)
	if err != nil {
		return nil, err
	}

	methods, err := parseMethodsFromPackage(filename, structName)
	if err != nil {
		return nil, err
	}
	info.Methods = methods
	return info, nil
}

// ParseTypeSpec 从已解析的 AST 中提取结构体信息，不扫描方法
func ParseTypeSpec(fset *token.FileSet, file *ast.File, spec *ast.TypeSpec, filename string) (*StructInfo, error) {
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("%s 不是结构体，而是 %s", spec.Name.Name, kindOf(spec.Type))
	}

	info := &StructInfo{
		Name:        spec.Name.Name,
		PackageName: file.Name.Name,
		FilePath:    filename,
		Imports:     extractImports(file),
	}

	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			constraint := types.ExprString(field.Type)
			for _, name := range field.Names {
				info.TypeParams = append(info.TypeParams, TypeParam{Name: name.Name, Constraint: constraint})
			}
		}
	}

	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		var tag string
		if field.Tag != nil {
			tag = unquoteTag(field.Tag.Value)
		}

		// 匿名嵌入字段
		if len(field.Names) == 0 {
			info.Fields = append(info.Fields, FieldInfo{
				Name:     embeddedName(field.Type),
				Type:     typ,
				Tag:      tag,
				Embedded: true,
				Position: fset.Position(field.Pos()),
			})
			continue
		}

		// a, b int 拆成两个字段
		for _, name := range field.Names {
			info.Fields = append(info.Fields, FieldInfo{
				Name:     name.Name,
				Type:     typ,
				Tag:      tag,
				Position: fset.Position(name.Pos()),
			})
		}
	}
	return info, nil
}

// findTypeSpec 在文件顶层声明中查找类型
func findTypeSpec(file *ast.File, name string) *ast.TypeSpec {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == name {
				return ts
			}
		}
	}
	return nil
}

// extractImports 提取文件的导入列表
func extractImports(file *ast.File) []ImportInfo {
	imports := make([]ImportInfo, 0, len(file.Imports))
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		info := ImportInfo{Alias: assumedName(importPath), Path: importPath}
		if imp.Name != nil {
			info.Alias, info.Explicit = imp.Name.Name, true
		}
		imports = append(imports, info)
	}
	return imports
}

// assumedName 未写别名时按 goimports 的规则推断包名
// github.com/goccy/go-yaml -> yaml, gopkg.in/yaml.v3 -> yaml, example.com/x/v2 -> x
func assumedName(importPath string) string {
	base := path.Base(importPath)
	if len(base) > 1 && base[0] == 'v' && strings.Trim(base[1:], "0123456789") == "" {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}); i >= 0 {
		base = base[:i]
	}
	return base
}

// embeddedName 匿名字段的字段名：去掉指针、包名和泛型实参后的类型名
func embeddedName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.SelectorExpr:
			return t.Sel.Name
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return types.ExprString(expr)
		}
	}
}

func kindOf(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.InterfaceType:
		return "接口"
	case *ast.FuncType:
		return "函数类型"
	case *ast.MapType:
		return "映射类型"
	case *ast.ArrayType:
		return "数组或切片"
	case *ast.ChanType:
		return "通道类型"
	default:
		return "类型 " + types.ExprString(expr)
	}
}

// packageDir 返回文件所在的包目录
func packageDir(filename string) string {
	return filepath.Dir(filename)
}
