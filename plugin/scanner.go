package plugin

import (
	"bufio"
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

// Scanner 两阶段并行注解扫描器
// 第一阶段：快速文本匹配，找出可能包含注解的文件
// 第二阶段：对匹配的文件进行 AST 解析
type Scanner struct {
	workers int
	verbose bool

	annotationFilter []string
}

// ScannerOption 扫描器选项
type ScannerOption func(*Scanner)

func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithScannerVerbose(v bool) ScannerOption {
	return func(s *Scanner) {
		s.verbose = v
	}
}

func WithAnnotationFilter(annotations ...string) ScannerOption {
	return func(s *Scanner) {
		s.annotationFilter = annotations
	}
}

func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	// quickMatchRegex 匹配 @Name 或 @Name(...)
	quickMatchRegex = regexp.MustCompile(`@(\w+)(?:\([^)]*\))?`)

	// generatedRegex Go 约定的生成文件标记
	generatedRegex = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

	// directiveRegex 匹配 //go:strunemix: 和 // go:strunemix:
	directiveRegex = regexp.MustCompile(`go:strunemix:\s*(.*)`)
)

// Scan 扫描指定路径
// 支持: ./... ./pkg/... ./pkg /abs/path/file.go
func (s *Scanner) Scan(ctx context.Context, patterns ...string) (*ScanResult, error) {
	files, err := collectFiles(patterns)
	if err != nil {
		return nil, err
	}

	matched := parallel(ctx, s.workers, files, func(file string) bool {
		ok, err := s.QuickMatchFile(file)
		return err == nil && ok
	})
	var candidates []string
	for i, ok := range matched {
		if ok {
			candidates = append(candidates, files[i])
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scans := parallel(ctx, s.workers, candidates, s.parseFile)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ScanResult{PackageConfigs: make(map[string]*PackageConfig)}
	for i, fs := range scans {
		if fs.err != nil {
			if s.verbose {
				warnf("跳过无法解析的文件 %s: %v", candidates[i], fs.err)
			}
			continue
		}
		for _, t := range fs.targets {
			switch t.Target.Kind {
			case TargetStruct:
				result.Structs = append(result.Structs, t)
			case TargetInterface:
				result.Interfaces = append(result.Interfaces, t)
			default:
				result.Types = append(result.Types, t)
			}
		}
		if fs.pkgConfig != nil {
			mergePackageConfig(result.PackageConfigs, fs.pkgConfig)
		}
	}
	return result, nil
}

// parallel 用 workers 个协程处理 items，结果与输入顺序一致
// ctx 取消后未处理的元素保持零值
func parallel[T, R any](ctx context.Context, workers int, items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	workers = min(max(workers, 1), len(items))

	indexCh := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				results[i] = fn(items[i])
			}
		}()
	}

send:
	for i := range items {
		select {
		case <-ctx.Done():
			break send
		case indexCh <- i:
		}
	}
	close(indexCh)
	wg.Wait()
	return results
}

// QuickMatchFile 快速检查文件是否包含注解或 go:strunemix 指令
// 生成的文件直接返回 false，dev 模式也用它判断是否需要重新生成
func (s *Scanner) QuickMatchFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "/*") {
			continue
		}
		if generatedRegex.MatchString(trimmed) {
			return false, nil
		}
		if strings.Contains(trimmed, "go:strunemix:") {
			return true, nil
		}
		for _, match := range quickMatchRegex.FindAllStringSubmatch(trimmed, -1) {
			if len(s.annotationFilter) == 0 {
				return true, nil
			}
			for _, filter := range s.annotationFilter {
				if match[1] == filter {
					return true, nil
				}
			}
		}
	}
	return false, scanner.Err()
}

// fileScan 单个文件的解析结果
type fileScan struct {
	targets   []*AnnotatedTarget
	pkgConfig *PackageConfig
	err       error
}

// parseFile AST 解析单个文件
func (s *Scanner) parseFile(filePath string) fileScan {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return fileScan{err: err}
	}

	result := fileScan{pkgConfig: s.parsePackageConfig(file, filePath)}
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if t := s.parseTypeSpec(fset, filePath, file.Name.Name, gd, typeSpec); t != nil {
				result.targets = append(result.targets, t)
			}
		}
	}
	return result
}

// parseTypeSpec 解析类型声明上的注解
// 分组声明 type ( ... ) 中优先使用类型自己的注释
func (s *Scanner) parseTypeSpec(fset *token.FileSet, filePath, packageName string, decl *ast.GenDecl, spec *ast.TypeSpec) *AnnotatedTarget {
	doc := spec.Doc
	if doc == nil && len(decl.Specs) == 1 {
		doc = decl.Doc
	}
	if doc == nil {
		return nil
	}

	annotations := FilterByNames(ParseAnnotations(doc.Text()), s.annotationFilter...)
	if len(annotations) == 0 {
		return nil
	}

	target := &Target{
		Kind:        TargetType,
		Name:        spec.Name.Name,
		PackageName: packageName,
		FilePath:    filePath,
		Position:    fset.Position(spec.Pos()),
		Node:        spec,
	}
	switch spec.Type.(type) {
	case *ast.StructType:
		target.Kind = TargetStruct
	case *ast.InterfaceType:
		target.Kind = TargetInterface
	}
	return &AnnotatedTarget{Target: target, Annotations: annotations}
}

// collectFiles 收集所有需要扫描的文件，跳过测试文件与隐藏、vendor、testdata 目录
func collectFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		pattern = strings.TrimSuffix(pattern, "/...")

		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if strings.HasSuffix(absPath, ".go") {
				add(absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == absPath {
					return nil
				}
				name := d.Name()
				if !recursive || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
					name == "vendor" || name == "testdata" {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// Scan 使用默认扫描器扫描
func Scan(ctx context.Context, patterns ...string) (*ScanResult, error) {
	return NewScanner().Scan(ctx, patterns...)
}

// ScanWithFilter 只扫描指定注解
func ScanWithFilter(ctx context.Context, annotations []string, patterns ...string) (*ScanResult, error) {
	return NewScanner(WithAnnotationFilter(annotations...)).Scan(ctx, patterns...)
}

// parsePackageConfig 解析包级 go:strunemix: 指令
//
//	//go:strunemix: -output `$FILE_mix`
//	// go:strunemix: plugin:strunemix -output `fields_gen`
func (s *Scanner) parsePackageConfig(file *ast.File, filePath string) *PackageConfig {
	var lines []string
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			text := strings.TrimPrefix(c.Text, "//")
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")
			if m := directiveRegex.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
				lines = append(lines, m[1])
			}
		}
	}

	switch len(lines) {
	case 0:
		return nil
	case 1:
		return parseDirectiveLine(lines[0], filePath)
	default:
		warnf("文件 %s 定义了多个 go:strunemix: 指令，将被忽略", filePath)
		return nil
	}
}

// mergePackageConfig 同一包内多个文件的指令合并，冲突时后发现的生效
func mergePackageConfig(configs map[string]*PackageConfig, cfg *PackageConfig) {
	existing, ok := configs[cfg.PackageDir]
	if !ok {
		configs[cfg.PackageDir] = cfg
		return
	}
	if cfg.DefaultOutput != "" {
		if existing.DefaultOutput != "" && existing.DefaultOutput != cfg.DefaultOutput {
			warnf("包 %s 中存在多个不同的默认输出配置，使用后发现的配置", cfg.PackageDir)
		}
		existing.DefaultOutput = cfg.DefaultOutput
	}
	for k, v := range cfg.PluginOutputs {
		if old, ok := existing.PluginOutputs[k]; ok && old != v {
			warnf("包 %s 中插件 %s 存在多个不同的输出配置，使用后发现的配置", cfg.PackageDir, k)
		}
		existing.PluginOutputs[k] = v
	}
}

// parseDirectiveLine 解析单行指令内容
//
//	-output `xxx`                                  默认输出
//	plugin:strunemix -output `xxx`                 插件特定输出
func parseDirectiveLine(line string, filePath string) *PackageConfig {
	config := &PackageConfig{
		PackageDir:    filepath.Dir(filePath),
		PluginOutputs: make(map[string]string),
	}

	parts := splitDirectiveArgs(strings.TrimSpace(line))
	var currentPlugin string
	for i := 0; i < len(parts); i++ {
		switch {
		case strings.HasPrefix(parts[i], "plugin:"):
			currentPlugin = strings.ToLower(strings.TrimPrefix(parts[i], "plugin:"))
		case parts[i] == "-output" && i+1 < len(parts):
			i++
			output := trimQuotes(parts[i])
			if currentPlugin == "" {
				config.DefaultOutput = output
			} else {
				config.PluginOutputs[currentPlugin] = output
			}
		}
	}

	if config.DefaultOutput == "" && len(config.PluginOutputs) == 0 {
		return nil
	}
	return config
}

// splitDirectiveArgs 按空格分割，引号内的空格保留
func splitDirectiveArgs(line string) []string {
	var parts []string
	var current strings.Builder
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == 0 && (c == '`' || c == '"' || c == '\''):
			quote = c
			current.WriteByte(c)
		case quote != 0 && c == quote:
			quote = 0
			current.WriteByte(c)
		case quote == 0 && c == ' ':
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '`' || first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
