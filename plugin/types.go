package plugin

import (
	"go/ast"
	"go/token"
	"path/filepath"

	"github.com/donutnomad/gg"
)

// TargetKind 注解目标的类型
type TargetKind int

const (
	TargetStruct    TargetKind = iota + 1 // 结构体
	TargetInterface                       // 接口
	TargetType                            // 其他具名类型，如 type Status int
)

func (k TargetKind) String() string {
	switch k {
	case TargetStruct:
		return "struct"
	case TargetInterface:
		return "interface"
	case TargetType:
		return "type"
	default:
		return "unknown"
	}
}

// ParamDef 注解参数的元信息
type ParamDef struct {
	Name        string   // 参数名称
	Required    bool     // 是否必填
	Default     string   // 默认值（如果不是必填）
	Description string   // 参数描述
	Enum        []string // 可选值，为空表示不限制
}

// Annotation 解析后的注解
type Annotation struct {
	Name   string            // 注解名称，如 "Strunemix"
	Params map[string]string // 注解参数，key 统一小写
	Raw    string            // 原始注解文本
}

// Target 注解所在的类型声明
type Target struct {
	Kind        TargetKind
	Name        string
	PackageName string
	FilePath    string
	Position    token.Position

	// Node 类型声明节点，供生成器进一步解析
	Node *ast.TypeSpec
}

// AnnotatedTarget 带注解的目标
type AnnotatedTarget struct {
	Target       *Target
	Annotations  []*Annotation
	ParsedParams any // 解析后的参数结构体（值类型）
}

// ScanResult 扫描结果，目标按文件路径与声明位置排序
type ScanResult struct {
	Structs    []*AnnotatedTarget
	Interfaces []*AnnotatedTarget
	Types      []*AnnotatedTarget

	// PackageConfigs 包级配置
	// key: 包目录
	PackageConfigs map[string]*PackageConfig
}

// All 返回所有带注解的目标
func (r *ScanResult) All() []*AnnotatedTarget {
	result := make([]*AnnotatedTarget, 0, len(r.Structs)+len(r.Interfaces)+len(r.Types))
	result = append(result, r.Structs...)
	result = append(result, r.Interfaces...)
	result = append(result, r.Types...)
	return result
}

// ByAnnotation 按注解名称过滤
func (r *ScanResult) ByAnnotation(name string) []*AnnotatedTarget {
	var result []*AnnotatedTarget
	for _, t := range r.All() {
		if HasAnnotation(t.Annotations, name) {
			result = append(result, t)
		}
	}
	return result
}

// GenerateContext 生成上下文，传递给 Generator
type GenerateContext struct {
	Targets        []*AnnotatedTarget
	PackageConfigs map[string]*PackageConfig
	DefaultOutput  string // 命令行或配置文件指定的默认输出路径（最低优先级）
	Verbose        bool
}

// GetPackageConfig 获取源文件所在包的配置
func (c *GenerateContext) GetPackageConfig(filePath string) *PackageConfig {
	if c.PackageConfigs == nil {
		return nil
	}
	return c.PackageConfigs[filepath.Dir(filePath)]
}

// GenerateResult 生成结果
// Generator 只返回 gg 定义，合并与写入由 Run 统一处理
type GenerateResult struct {
	// Definitions key: 输出文件路径
	Definitions map[string]*gg.Generator

	Errors  []error
	Skipped int
}

// NewGenerateResult 创建新的生成结果
func NewGenerateResult() *GenerateResult {
	return &GenerateResult{
		Definitions: make(map[string]*gg.Generator),
	}
}

// AddDefinition 添加 gg 定义
func (r *GenerateResult) AddDefinition(path string, gen *gg.Generator) {
	if r.Definitions == nil {
		r.Definitions = make(map[string]*gg.Generator)
	}
	r.Definitions[path] = gen
}

// AddError 添加错误
func (r *GenerateResult) AddError(err error) {
	r.Errors = append(r.Errors, err)
}

// HasErrors 检查是否有错误
func (r *GenerateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// PackageConfig 包级生成配置，通过 // go:strunemix: 注释定义
//
//	// go:strunemix: -output `$FILE_mix`
//	// go:strunemix: plugin:strunemix -output `fields_gen`
type PackageConfig struct {
	PackageDir string

	// DefaultOutput 对所有插件生效的输出路径
	DefaultOutput string

	// PluginOutputs key: 插件名（小写）
	PluginOutputs map[string]string
}

// GetPluginOutput 优先返回插件特定配置，其次返回默认配置
func (c *PackageConfig) GetPluginOutput(pluginName string) string {
	if c == nil {
		return ""
	}
	if output, ok := c.PluginOutputs[pluginName]; ok {
		return output
	}
	return c.DefaultOutput
}
