package structparse

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// parseMethodsFromPackage 从包中的所有文件解析指定结构体的方法
func parseMethodsFromPackage(targetFile, structName string) ([]MethodInfo, error) {
	files, err := packageFiles(packageDir(targetFile))
	if err != nil {
		return nil, fmt.Errorf("查找包文件失败: %w", err)
	}

	var all []MethodInfo
	for _, file := range files {
		// 先用字符串匹配过滤掉不可能包含方法的文件
		if !fileMayContain(file, structName) {
			continue
		}
		node, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			// 同包其他文件的语法错误不影响当前结构体
			continue
		}
		// 生成文件中的方法不计入，否则重新生成时会与自己冲突
		if ast.IsGenerated(node) {
			continue
		}
		all = append(all, methodsOf(node, file, structName)...)
	}
	return all, nil
}

// FindFunc 在 dir 对应的包中查找无接收器的顶层函数
func FindFunc(dir, name string) (bool, error) {
	files, err := packageFiles(dir)
	if err != nil {
		return false, fmt.Errorf("查找包文件失败: %w", err)
	}
	for _, file := range files {
		if !fileMayContain(file, "func "+name) {
			continue
		}
		node, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.SkipObjectResolution)
		if err != nil {
			continue
		}
		for _, decl := range node.Decls {
			if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil && fn.Name.Name == name {
				return true, nil
			}
		}
	}
	return false, nil
}

func fileMayContain(filename, s string) bool {
	content, err := os.ReadFile(filename)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte(s))
}

func methodsOf(node *ast.File, filename, structName string) []MethodInfo {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}

	var methods []MethodInfo
	for _, decl := range node.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		recv := fn.Recv.List[0]
		recvType, ok := receiverType(recv.Type)
		if !ok || strings.TrimPrefix(recvType, "*") != structName {
			continue
		}
		var recvName string
		if len(recv.Names) > 0 {
			recvName = recv.Names[0].Name
		}
		methods = append(methods, MethodInfo{
			Name:         fn.Name.Name,
			ReceiverName: recvName,
			ReceiverType: recvType,
			FilePath:     absPath,
		})
	}
	return methods
}

// receiverType 返回 User、*User，泛型接收器 Pair[K, V] 也归为 Pair
func receiverType(expr ast.Expr) (string, bool) {
	prefix := ""
	if star, ok := expr.(*ast.StarExpr); ok {
		prefix = "*"
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.IndexExpr:
		expr = t.X
	case *ast.IndexListExpr:
		expr = t.X
	}
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}
	return prefix + ident.Name, true
}

// packageFiles 列出目录下的非测试 Go 文件，不递归
func packageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}
