package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/donutnomad/strunemix/internal/config"
	"github.com/donutnomad/strunemix/mixgen"
	"github.com/donutnomad/strunemix/plugin"
)

var mixGenerator = mixgen.NewMixGenerator()

func init() {
	plugin.MustRegister(mixGenerator)
}

var (
	verbose    = flag.Bool("v", false, "详细输出")
	help       = flag.Bool("h", false, "显示帮助信息")
	output     = flag.String("output", "", "默认输出路径（支持模板变量 $FILE, $PACKAGE, $TYPE）")
	noOutput   = flag.Bool("no-output", false, "禁用默认输出（使用注解或包级配置的输出路径）")
	async      = flag.Bool("async", false, "并发执行生成器")
	workers    = flag.Int("workers", 0, "扫描并发数，0 表示 CPU 核数")
	configPath = flag.String("config", "", "配置文件路径（默认向上查找 "+config.FileName+"）")
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	titleColor = color.New(color.FgCyan)
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}

	args := flag.Args()

	// 默认命令是 gen
	if len(args) == 0 {
		runGen(cfg, nil, false)
		return
	}

	switch args[0] {
	case "gen":
		runGen(cfg, args[1:], false)
	case "check":
		runGen(cfg, args[1:], true)
	case "dev":
		runDev(cfg, args[1:])
	case "inspect":
		runInspect(cfg, args[1:])
	default:
		// 不是子命令，当作路径参数处理，执行 gen
		runGen(cfg, args, false)
	}
}

// loadConfig 读取配置文件，命令行显式传入的参数覆盖配置文件
func loadConfig() (*config.Config, error) {
	path := *configPath
	if path == "" {
		path = config.Find(".")
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
		if *verbose {
			fmt.Printf("使用配置文件: %s\n", path)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = *output
		case "no-output":
			cfg.NoOutput = *noOutput
		case "async":
			cfg.Async = *async
		case "workers":
			cfg.Workers = *workers
		}
	})
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers 不能为负数: %d", cfg.Workers)
	}
	return cfg, nil
}

// patternsOf 命令行未指定路径时使用配置文件中的模式
func patternsOf(cfg *config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Patterns
}

// outputOf -no-output 时传空字符串，否则使用 -output 的值
func outputOf(cfg *config.Config) string {
	if cfg.NoOutput {
		return ""
	}
	return cfg.Output
}

func runGen(cfg *config.Config, args []string, check bool) {
	registry := plugin.Global()
	if len(registry.Generators()) == 0 {
		fatal(errors.New("没有已注册的生成器"))
	}

	if *verbose {
		fmt.Printf("已注册 %d 个生成器:\n", len(registry.Generators()))
		for _, gen := range registry.Generators() {
			anns := lo.Map(gen.Annotations(), func(item string, _ int) string {
				return "@" + item
			})
			fmt.Printf("  - %s (%s)\n", gen.Name(), strings.Join(anns, ","))
		}
		fmt.Println()
	}

	opts := &plugin.RunOptions{
		Registry: registry,
		Patterns: patternsOf(cfg, args),
		Verbose:  *verbose,
		Output:   outputOf(cfg),
		Async:    cfg.Async,
		Workers:  cfg.Workers,
		Check:    check,
	}

	stats, err := plugin.RunWithOptions(context.Background(), opts)
	if errors.Is(err, plugin.ErrStale) {
		for _, path := range stats.StaleFiles {
			errorColor.Fprintf(os.Stderr, "过期: %s\n", path)
		}
		fatal(err)
	}
	if err != nil {
		fatal(err)
	}

	if check {
		fmt.Printf("检查完成: %d 个文件均为最新\n", stats.FileCount)
		return
	}
	if stats != nil && (stats.FileCount > 0 || *verbose) {
		fmt.Printf("\n统计: 扫描 %d 个目标, 生成 %d 个文件\n", stats.TargetCount, stats.FileCount)
		fmt.Printf("耗时: 扫描 %v, 生成 %v, 总计 %v\n", stats.ScanDuration, stats.GenerateDuration, stats.TotalDuration)
	}
}

// runInspect 打印每个带注解结构体的字段表，不写文件
func runInspect(cfg *config.Config, args []string) {
	scanner := plugin.NewScanner(
		plugin.WithAnnotationFilter(mixGenerator.Annotations()...),
		plugin.WithWorkers(cfg.Workers),
	)
	result, err := scanner.Scan(context.Background(), patternsOf(cfg, args)...)
	if err != nil {
		fatal(fmt.Errorf("扫描失败: %w", err))
	}

	failed := 0
	for i, at := range result.Structs {
		if i > 0 {
			fmt.Println()
		}
		titleColor.Println(at.Target.Position)
		model, err := mixGenerator.Inspect(at)
		if err != nil {
			failed++
			errorColor.Fprintf(os.Stderr, "%s: %v\n", at.Target.Name, err)
			continue
		}
		fmt.Print(mixgen.Describe(model))
	}

	if len(result.Structs) == 0 {
		fmt.Println("没有找到带 @Strunemix 注解的结构体")
	}
	if failed > 0 {
		fatal(fmt.Errorf("%d 个结构体无法生成", failed))
	}
}

func fatal(err error) {
	errorColor.Fprintf(os.Stderr, "错误: %v\n", err)
	os.Exit(1)
}

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `strunemix - 为结构体生成字段名与字段值伴生枚举

用法:
  strunemix [选项] [路径...]
  strunemix gen [选项] [路径...]
  strunemix check [路径...]
  strunemix dev [路径...]
  strunemix inspect [路径...]

命令:
  gen       执行代码生成（默认）
  check     只比较不写入，生成文件过期时输出 diff 并以非零状态退出
  dev       启动开发模式，监听文件变动自动生成
  inspect   打印每个结构体参与生成的字段

路径:
  支持 Go 包路径模式，如:
    ./...          递归扫描当前目录及子目录（默认）
    ./models/...   递归扫描 models 目录
    ./models       只扫描 models 目录

选项:
`)
	flag.PrintDefaults()

	registry := plugin.Global()
	if len(registry.Generators()) > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "\n支持的注解:\n")
		_, _ = fmt.Fprint(os.Stderr, plugin.FormatHelpText(registry))
	}

	_, _ = fmt.Fprintf(os.Stderr, `字段标签:
  strunemix:"skip"   字段不参与生成

模板变量:
  $FILE     - 源文件名（不含 .go 后缀）
  $PACKAGE  - 包名
  $TYPE     - 结构体名

配置文件 %s:
  output: $FILE_mix
  async: true
  workers: 4
  debounce: 500ms
  patterns: [./models/...]

示例:
  strunemix                          扫描当前目录（默认 ./...）
  strunemix -v ./models/...          详细模式扫描 models 目录
  strunemix -output fields_gen ./... 所有结构体写入同一个文件
  strunemix check ./...              CI 中检查生成文件是否最新
  strunemix inspect ./models         查看字段表
  strunemix dev ./...                开发模式，监听文件变动
`, config.FileName)
}
