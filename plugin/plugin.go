package plugin

import (
	"reflect"
	"slices"
)

// Generator 代码生成器接口
type Generator interface {
	// Name 生成器名称，也是 go:strunemix 指令中 plugin:xxx 的名字
	Name() string

	// Annotations 该生成器处理的注解，一个注解只能绑定一个生成器
	Annotations() []string

	// SupportedTargets 支持的目标类型，其余类型上的注解会被报告为错误
	SupportedTargets() []TargetKind

	ParamDefs() []ParamDef

	// NewParams 返回参数结构体的新指针，nil 表示不需要参数
	NewParams() any

	// Priority 数字越小越靠前，多个生成器写同一文件时决定顺序
	Priority() int

	Generate(ctx *GenerateContext) (*GenerateResult, error)
}

// BaseGenerator 提供基础实现，可嵌入
type BaseGenerator struct {
	name        string
	annotations []string
	targets     []TargetKind
	paramDefs   []ParamDef
	paramsProto any
	priority    int
}

func NewBaseGenerator(name string, annotations []string, targets []TargetKind) *BaseGenerator {
	return &BaseGenerator{
		name:        name,
		annotations: annotations,
		targets:     targets,
		priority:    100,
	}
}

// NewBaseGeneratorWithParamsStruct 创建带参数结构体的基础生成器
// paramsProto: 参数结构体的零值，参数定义从其 param tag 解析
func NewBaseGeneratorWithParamsStruct(name string, annotations []string, targets []TargetKind, paramsProto any) *BaseGenerator {
	g := NewBaseGenerator(name, annotations, targets)
	g.paramDefs = ParseParamsFromStruct(paramsProto)
	g.paramsProto = paramsProto
	return g
}

func (g *BaseGenerator) Name() string {
	return g.name
}

func (g *BaseGenerator) Annotations() []string {
	return g.annotations
}

func (g *BaseGenerator) SupportedTargets() []TargetKind {
	return g.targets
}

func (g *BaseGenerator) ParamDefs() []ParamDef {
	return g.paramDefs
}

// NewParams 通过反射创建参数结构体的新实例，返回指针以便设置字段
func (g *BaseGenerator) NewParams() any {
	if g.paramsProto == nil {
		return nil
	}
	typ := reflect.TypeOf(g.paramsProto)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return reflect.New(typ).Interface()
}

func (g *BaseGenerator) Priority() int {
	return g.priority
}

// SetPriority 设置优先级，数字越小优先级越高
func (g *BaseGenerator) SetPriority(priority int) *BaseGenerator {
	g.priority = priority
	return g
}

// Supports 检查是否支持该目标类型
func (g *BaseGenerator) Supports(kind TargetKind) bool {
	return slices.Contains(g.targets, kind)
}

func supports(gen Generator, kind TargetKind) bool {
	return slices.Contains(gen.SupportedTargets(), kind)
}
