package plugin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/donutnomad/gg"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"

	"github.com/donutnomad/strunemix/internal/utils"
)

// GeneratedHeader 生成文件的头部注释
const GeneratedHeader = "Code generated by strunemix. DO NOT EDIT."

// ErrStale check 模式下存在过期的生成文件
var ErrStale = errors.New("生成文件已过期")

// RunOptions 运行选项
type RunOptions struct {
	Registry *Registry
	Patterns []string
	Verbose  bool
	Output   string // 默认输出路径（最低优先级）
	Async    bool   // 是否并行执行各个生成器
	Workers  int    // 扫描并发数，0 表示 CPU 核数

	// Check 只比较不写入，生成内容与磁盘不一致时输出 diff 并返回 ErrStale
	Check bool
}

// RunStats 运行统计信息
type RunStats struct {
	ScanDuration     time.Duration
	GenerateDuration time.Duration
	TotalDuration    time.Duration
	TargetCount      int
	FileCount        int      // 写入（或 check 模式下比较）的文件数
	StaleFiles       []string // check 模式下过期的文件
}

// Run 使用给定注册表运行代码生成
func Run(ctx context.Context, registry *Registry, patterns ...string) error {
	_, err := RunWithOptions(ctx, &RunOptions{Registry: registry, Patterns: patterns})
	return err
}

// RunGlobal 使用全局注册表运行
func RunGlobal(ctx context.Context, patterns ...string) error {
	return Run(ctx, globalRegistry, patterns...)
}

// RunWithOptions 运行代码生成
//  1. 扫描注解
//  2. 把目标分发给对应的生成器并解析注解参数
//  3. 执行生成器
//  4. 合并同一文件的 gg 定义，格式化后写入（或与磁盘比较）
func RunWithOptions(ctx context.Context, opts *RunOptions) (*RunStats, error) {
	totalStart := time.Now()
	stats := &RunStats{}

	registry := opts.Registry
	if registry == nil {
		registry = globalRegistry
	}
	annotations := registry.Annotations()
	if len(annotations) == 0 {
		return nil, fmt.Errorf("没有已注册的生成器")
	}

	scanStart := time.Now()
	scanner := NewScanner(
		WithAnnotationFilter(annotations...),
		WithScannerVerbose(opts.Verbose),
		WithWorkers(opts.Workers),
	)
	result, err := scanner.Scan(ctx, opts.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("扫描失败: %w", err)
	}
	stats.ScanDuration = time.Since(scanStart)
	stats.TargetCount = len(result.All())

	if stats.TargetCount == 0 {
		if opts.Verbose {
			logf("没有找到任何带注解的目标")
		}
		stats.TotalDuration = time.Since(totalStart)
		return stats, nil
	}
	if opts.Verbose {
		logf("找到 %d 个带注解的目标 (扫描耗时: %v)", stats.TargetCount, stats.ScanDuration)
	}

	generateStart := time.Now()
	dispatch, allErrors := registry.DispatchTargets(result)

	gens := lo.Filter(registry.Generators(), func(g Generator, _ int) bool {
		return len(dispatch[g.Name()]) > 0
	})
	for _, gen := range gens {
		targets, errs := bindParams(gen, dispatch[gen.Name()])
		dispatch[gen.Name()] = targets
		allErrors = append(allErrors, errs...)
	}

	results := executeGenerators(gens, opts.Async, func(gen Generator) (*GenerateResult, error) {
		targets := dispatch[gen.Name()]
		if opts.Verbose {
			logf("执行生成器: %s (%d 个目标)", gen.Name(), len(targets))
		}
		start := time.Now()
		res, err := gen.Generate(&GenerateContext{
			Targets:        targets,
			PackageConfigs: result.PackageConfigs,
			DefaultOutput:  opts.Output,
			Verbose:        opts.Verbose,
		})
		if opts.Verbose {
			logf("执行生成器: %s (耗时: %v)", gen.Name(), time.Since(start))
		}
		return res, err
	})

	// 按优先级收集，同一文件的定义保持生成器顺序
	fileDefinitions := make(map[string][]*gg.Generator)
	fileGenNames := make(map[string][]string)
	for i, gen := range gens {
		item := results[i]
		if item.err != nil {
			allErrors = append(allErrors, fmt.Errorf("生成器 %s 执行失败: %w", gen.Name(), item.err))
			continue
		}
		if item.result == nil {
			continue
		}
		for path, def := range item.result.Definitions {
			fileDefinitions[path] = append(fileDefinitions[path], def)
			fileGenNames[path] = append(fileGenNames[path], gen.Name())
		}
		allErrors = append(allErrors, item.result.Errors...)
	}

	paths := lo.Keys(fileDefinitions)
	slices.Sort(paths)
	for _, path := range paths {
		merged, err := mergeDefinitions(fileDefinitions[path], fileGenNames[path])
		if err != nil {
			allErrors = append(allErrors, fmt.Errorf("合并文件 %s 的定义失败: %w", path, err))
			continue
		}
		src, err := utils.FormatSource(path, merged.Bytes())
		if err != nil {
			allErrors = append(allErrors, err)
			continue
		}
		stats.FileCount++

		if opts.Check {
			diff, err := diffFile(path, src)
			if err != nil {
				allErrors = append(allErrors, err)
				continue
			}
			if diff != "" {
				stats.StaleFiles = append(stats.StaleFiles, path)
				rawf("%s", diff)
			} else if opts.Verbose {
				logf("已是最新: %s", path)
			}
			continue
		}

		if err := writeFile(path, src); err != nil {
			allErrors = append(allErrors, fmt.Errorf("写入文件 %s 失败: %w", path, err))
			continue
		}
		logf("生成文件: %s", path)
	}

	stats.GenerateDuration = time.Since(generateStart)
	stats.TotalDuration = time.Since(totalStart)

	if len(allErrors) > 0 {
		for _, e := range allErrors {
			errorf("%v", e)
		}
		return stats, fmt.Errorf("生成过程中出现 %d 个错误", len(allErrors))
	}
	if len(stats.StaleFiles) > 0 {
		return stats, fmt.Errorf("%w: %d 个文件需要重新生成", ErrStale, len(stats.StaleFiles))
	}
	return stats, nil
}

// bindParams 把注解参数解析进生成器的参数结构体，解析失败的目标被剔除
func bindParams(gen Generator, targets []*AnnotatedTarget) ([]*AnnotatedTarget, []error) {
	if gen.NewParams() == nil {
		return targets, nil
	}
	var kept []*AnnotatedTarget
	var errs []error
	for _, target := range targets {
		var ann *Annotation
		for _, name := range gen.Annotations() {
			if ann = GetAnnotation(target.Annotations, name); ann != nil {
				break
			}
		}
		if ann == nil {
			continue
		}

		params := gen.NewParams()
		val := reflect.ValueOf(params)
		if val.Kind() != reflect.Ptr {
			errs = append(errs, fmt.Errorf("NewParams() 必须返回指针类型, 得到: %T", params))
			continue
		}
		if err := ParseAnnotationParams(ann, params, gen.ParamDefs()); err != nil {
			errs = append(errs, fmt.Errorf("%s: %s: %w", target.Target.Position, target.Target.Name, err))
			continue
		}
		target.ParsedParams = val.Elem().Interface()
		kept = append(kept, target)
	}
	return kept, errs
}

type generatorOutcome struct {
	result *GenerateResult
	err    error
}

// executeGenerators 执行所有生成器，结果与 gens 顺序一致
func executeGenerators(gens []Generator, async bool, run func(Generator) (*GenerateResult, error)) []generatorOutcome {
	outcomes := make([]generatorOutcome, len(gens))
	if !async {
		for i, gen := range gens {
			res, err := run(gen)
			outcomes[i] = generatorOutcome{result: res, err: err}
		}
		return outcomes
	}

	var wg sync.WaitGroup
	for i, gen := range gens {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := run(gen)
			outcomes[i] = generatorOutcome{result: res, err: err}
		}()
	}
	wg.Wait()
	return outcomes
}

// mergeDefinitions 合并写入同一文件的多个 gg 定义
// 只有一个生成器时不加分隔注释
func mergeDefinitions(definitions []*gg.Generator, genNames []string) (*gg.Generator, error) {
	if len(definitions) == 0 {
		return nil, fmt.Errorf("没有定义需要合并")
	}

	merged := gg.New()
	// 头部注释与 package 之间空一行，避免成为包文档
	merged.SetHeader("%s\n", GeneratedHeader)

	var pkgName string
	for _, def := range definitions {
		name := def.PackageName()
		if name == "" {
			continue
		}
		if pkgName != "" && pkgName != name {
			return nil, fmt.Errorf("包名不一致: %s vs %s", pkgName, name)
		}
		pkgName = name
	}
	if pkgName != "" {
		merged.SetPackage(pkgName)
	}

	for i, def := range definitions {
		if len(definitions) > 1 {
			merged.Body().AddLine()
			merged.Body().AddString(fmt.Sprintf("// ================ %s ================", genNames[i]))
			merged.Body().AddLine()
		}
		merged.Merge(def)
	}
	return merged, nil
}

// writeFile 写入已格式化的代码，内容未变化时不重写文件
func writeFile(path string, src []byte) error {
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, src) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	return os.WriteFile(path, src, 0o644)
}

// diffFile 返回磁盘文件与新内容的 unified diff，一致时返回空串
func diffFile(path string, src []byte) (string, error) {
	old, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("读取文件 %s 失败: %w", path, err)
	}
	if bytes.Equal(old, src) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(src)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
}

// GetOutputPath 计算输出路径
// 优先级：注解参数 > 包级插件配置 > 包级默认配置 > 命令行参数 > 默认文件名
// 模板变量：
//   - $FILE: 源文件名（不含 .go 后缀）
//   - $PACKAGE: 包名
//   - $TYPE: 类型名
func GetOutputPath(target *Target, ann *Annotation, defaultFileName string, pkgConfig *PackageConfig, pluginName string, cmdOutput string) string {
	output := ann.GetParam(OutputParam)
	if output == "" {
		output = pkgConfig.GetPluginOutput(strings.ToLower(pluginName))
	}
	if output == "" {
		output = cmdOutput
	}
	if output == "" {
		output = defaultFileName
	}
	if output == "" {
		output = "strunemix_gen.go"
	}

	output = replaceTemplateVars(output, target)
	if !strings.HasSuffix(output, ".go") {
		output += ".go"
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(filepath.Dir(target.FilePath), output)
}

func replaceTemplateVars(template string, target *Target) string {
	fileName := strings.TrimSuffix(filepath.Base(target.FilePath), ".go")
	return strings.NewReplacer(
		"$FILE", fileName,
		"$PACKAGE", target.PackageName,
		"$TYPE", target.Name,
	).Replace(template)
}
