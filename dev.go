package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/donutnomad/strunemix/internal/config"
	"github.com/donutnomad/strunemix/internal/utils"
	"github.com/donutnomad/strunemix/plugin"
)

// DevOptions dev 命令选项
type DevOptions struct {
	Patterns []string      // 监听的路径模式
	Verbose  bool          // 详细输出
	Output   string        // 默认输出路径
	Async    bool          // 异步执行
	Workers  int           // 扫描并发数
	Debounce time.Duration // 防抖动时间
}

// devRunner 处理文件变动的核心逻辑
type devRunner struct {
	opts     *DevOptions
	registry *plugin.Registry
	watcher  *fsnotify.Watcher
	scanner  *plugin.Scanner
	ctx      context.Context // 用于响应退出信号

	// 防抖动相关
	mu          sync.Mutex
	pendingDirs map[string]*time.Timer // key: 包目录路径
}

// runDev 启动开发模式
func runDev(cfg *config.Config, args []string) {
	registry := plugin.Global()
	if len(registry.Generators()) == 0 {
		fatal(fmt.Errorf("没有已注册的生成器"))
	}

	debounce, err := cfg.DebounceDuration()
	if err != nil {
		fatal(err)
	}

	opts := &DevOptions{
		Patterns: patternsOf(cfg, args),
		Verbose:  *verbose,
		Output:   outputOf(cfg),
		Async:    cfg.Async,
		Workers:  cfg.Workers,
		Debounce: debounce,
	}

	if err := dev(opts); err != nil {
		fatal(err)
	}
}

// dev 启动开发模式
func dev(opts *DevOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n正在退出...")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer watcher.Close()

	registry := plugin.Global()
	runner := &devRunner{
		opts:        opts,
		registry:    registry,
		watcher:     watcher,
		scanner:     plugin.NewScanner(plugin.WithAnnotationFilter(registry.Annotations()...)),
		ctx:         ctx,
		pendingDirs: make(map[string]*time.Timer),
	}

	// 退出时停止所有待处理的定时器
	defer runner.stopTimers()

	dirs, err := collectWatchDirs(opts.Patterns)
	if err != nil {
		return fmt.Errorf("收集监听目录失败: %w", err)
	}
	if len(dirs) == 0 {
		return fmt.Errorf("没有找到需要监听的目录")
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("添加监听目录失败 %s: %w", dir, err)
		}
		if opts.Verbose {
			fmt.Printf("监听目录: %s\n", dir)
		}
	}

	fmt.Printf("开发模式已启动，监听 %d 个目录 (防抖 %v)\n", len(dirs), opts.Debounce)
	fmt.Println("按 Ctrl+C 退出")
	fmt.Println()

	return runner.watchLoop(ctx)
}

// watchLoop 事件处理循环
func (r *devRunner) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			if r.opts.Verbose {
				fmt.Printf("监听错误: %v\n", err)
			}
		}
	}
}

// handleEvent 处理文件事件
func (r *devRunner) handleEvent(event fsnotify.Event) {
	// 只关注 Write 和 Create 事件
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	filePath := event.Name
	if !strings.HasSuffix(filePath, ".go") || strings.HasSuffix(filePath, "_test.go") {
		return
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		if r.opts.Verbose {
			fmt.Printf("读取文件失败 %s: %v\n", filePath, err)
		}
		return
	}
	// 跳过生成的文件，否则写入生成文件会再次触发生成
	if isGeneratedSource(content) {
		return
	}

	if r.opts.Verbose {
		fmt.Printf("检测到文件变化: %s\n", filePath)
	}

	hasAnnotation, err := r.scanner.QuickMatchFile(filePath)
	if err != nil {
		if r.opts.Verbose {
			fmt.Printf("检查注解失败 %s: %v\n", filePath, err)
		}
		return
	}
	if !hasAnnotation {
		if r.opts.Verbose {
			fmt.Printf("跳过文件（无注解）: %s\n", filePath)
		}
		return
	}

	if err := utils.CheckSyntax(filePath, content); err != nil {
		fmt.Printf("语法错误 %s: %v\n", filePath, err)
		return
	}

	r.scheduleGenerate(filepath.Dir(filePath))
}

// scheduleGenerate 防抖动调度生成
func (r *devRunner) scheduleGenerate(pkgDir string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if timer, exists := r.pendingDirs[pkgDir]; exists {
		timer.Stop()
	}

	r.pendingDirs[pkgDir] = time.AfterFunc(r.opts.Debounce, func() {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		r.runGenerate(pkgDir)

		r.mu.Lock()
		delete(r.pendingDirs, pkgDir)
		r.mu.Unlock()
	})
}

func (r *devRunner) stopTimers() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, timer := range r.pendingDirs {
		timer.Stop()
	}
}

// runGenerate 只重新生成变动的包
func (r *devRunner) runGenerate(pkgDir string) {
	if r.opts.Verbose {
		fmt.Printf("触发代码生成: %s\n", pkgDir)
	}

	stats, err := plugin.RunWithOptions(r.ctx, &plugin.RunOptions{
		Registry: r.registry,
		Patterns: []string{pkgDir},
		Verbose:  r.opts.Verbose,
		Output:   r.opts.Output,
		Async:    r.opts.Async,
		Workers:  r.opts.Workers,
	})
	if err != nil {
		errorColor.Printf("生成失败: %v\n", err)
		return
	}

	if stats != nil && stats.FileCount > 0 {
		fmt.Printf("生成完成: %d 个文件 (耗时: %v)\n", stats.FileCount, stats.TotalDuration)
	} else if r.opts.Verbose {
		fmt.Printf("生成完成: 无文件生成\n")
	}
}

// collectWatchDirs 收集所有需要监听的目录
func collectWatchDirs(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		baseDir := strings.TrimSuffix(pattern, "/...")

		absDir, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absDir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Dir(absDir))
			continue
		}
		if !recursive {
			add(absDir)
			continue
		}

		err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			// 跳过隐藏目录、vendor 和 testdata
			name := d.Name()
			if path != absDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
				name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

var generatedPrefix = []byte("// Code generated ")

// isGeneratedSource 文件第一行是否为生成代码的标记
func isGeneratedSource(content []byte) bool {
	line, _, _ := bytes.Cut(content, []byte("\n"))
	return bytes.HasPrefix(line, generatedPrefix) && bytes.HasSuffix(bytes.TrimSpace(line), []byte("DO NOT EDIT."))
}
