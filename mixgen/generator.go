package mixgen

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/donutnomad/gg"
	"github.com/samber/lo"

	"github.com/donutnomad/strunemix/internal/structparse"
	"github.com/donutnomad/strunemix/plugin"
)

const (
	generatorName  = "strunemix"
	annotationName = "Strunemix"
)

// MixParams 定义 Strunemix 注解支持的参数
type MixParams struct {
	Default    string `param:"name=default,required=false,default=,description=跳过字段的默认值来源: zero 或同包的构造函数名"`
	Derive     string `param:"name=derive,required=false,default=,description=两个枚举共用的 derive 列表，以 | 分隔"`
	NameDerive string `param:"name=name_derive,required=false,default=,description=字段名枚举的 derive: String|Text|JSON|Compare 或 none"`
	DataDerive string `param:"name=data_derive,required=false,default=,description=字段值枚举的 derive: String|JSON 或 none"`
	Label      string `param:"name=label,required=false,default=source,enum=source|snake,description=字段标签风格"`
	Parse      string `param:"name=parse,required=false,default=none,enum=none|auto,description=是否生成基本类型的解析函数"`
}

// MixGenerator 实现 plugin.Generator 接口
type MixGenerator struct {
	plugin.BaseGenerator
}

func NewMixGenerator() *MixGenerator {
	return &MixGenerator{
		BaseGenerator: *plugin.NewBaseGeneratorWithParamsStruct(
			generatorName,
			[]string{annotationName},
			[]plugin.TargetKind{plugin.TargetStruct},
			MixParams{},
		),
	}
}

// targetInfo 存储单个目标的处理信息
type targetInfo struct {
	model  *Model
	target *plugin.AnnotatedTarget
}

// Generate 执行代码生成
func (g *MixGenerator) Generate(ctx *plugin.GenerateContext) (*plugin.GenerateResult, error) {
	result := plugin.NewGenerateResult()

	if len(ctx.Targets) == 0 {
		return result, nil
	}

	// 按输出文件分组处理
	// key: 输出路径, value: 待处理的目标列表
	fileTargets := make(map[string][]*targetInfo)

	for _, at := range ctx.Targets {
		ann := plugin.GetAnnotation(at.Annotations, annotationName)
		if ann == nil {
			result.Skipped++
			continue
		}

		model, err := g.Inspect(at)
		if err != nil {
			result.AddError(fmt.Errorf("%s: %s: %w", at.Target.Position, at.Target.Name, err))
			continue
		}

		pkgConfig := ctx.GetPackageConfig(at.Target.FilePath)
		outputPath := plugin.GetOutputPath(at.Target, ann, "$FILE_mix.go", pkgConfig, g.Name(), ctx.DefaultOutput)
		fileTargets[outputPath] = append(fileTargets[outputPath], &targetInfo{model: model, target: at})

		if ctx.Verbose {
			fmt.Printf("[%s] 处理结构体 %s -> %s\n", generatorName, model.Name, outputPath)
		}
	}

	// 按输出路径排序，确保生成顺序一致
	outputPaths := lo.Keys(fileTargets)
	slices.Sort(outputPaths)

	for _, outputPath := range outputPaths {
		targets := fileTargets[outputPath]
		// 按结构体名称排序，确保同一文件中不同结构体的顺序一致
		slices.SortFunc(targets, func(a, b *targetInfo) int {
			return strings.Compare(a.model.Name, b.model.Name)
		})

		if ctx.Verbose {
			for _, item := range targets {
				fmt.Printf("[%s] %s", generatorName, spew.Sdump(item.model))
			}
		}

		gen, err := g.generateDefinition(targets)
		if err != nil {
			result.AddError(fmt.Errorf("生成 %s 失败: %w", outputPath, err))
			continue
		}
		result.AddDefinition(outputPath, gen)
	}

	return result, nil
}

// Inspect 解析目标结构体并构建生成模型，参数未绑定时按注解现场解析
func (g *MixGenerator) Inspect(at *plugin.AnnotatedTarget) (*Model, error) {
	params, err := g.params(at)
	if err != nil {
		return nil, err
	}

	info, err := structparse.ParseStruct(at.Target.FilePath, at.Target.Name)
	if err != nil {
		return nil, fmt.Errorf("解析结构体失败: %w", err)
	}

	model, err := BuildModel(info, params)
	if err != nil {
		return nil, err
	}

	if model.Default == DefaultFunc {
		found, err := structparse.FindFunc(filepath.Dir(at.Target.FilePath), model.DefaultFunc)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("default=%s: 包 %s 中未找到函数 %s", model.DefaultFunc, info.PackageName, model.DefaultFunc)
		}
	}
	return model, nil
}

func (g *MixGenerator) params(at *plugin.AnnotatedTarget) (MixParams, error) {
	if at.ParsedParams != nil {
		params, ok := at.ParsedParams.(MixParams)
		if !ok {
			return MixParams{}, fmt.Errorf("ParsedParams 类型断言失败: %T", at.ParsedParams)
		}
		return params, nil
	}

	var params MixParams
	ann := plugin.GetAnnotation(at.Annotations, annotationName)
	if ann == nil {
		return params, fmt.Errorf("%s 没有 @%s 注解", at.Target.Name, annotationName)
	}
	if err := plugin.ParseAnnotationParams(ann, &params, g.ParamDefs()); err != nil {
		return params, err
	}
	return params, nil
}

// generateDefinition 为一组目标生成 gg 定义
func (g *MixGenerator) generateDefinition(targets []*targetInfo) (*gg.Generator, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("没有目标需要生成")
	}

	pkgName := targets[0].model.PackageName
	gen := gg.New()
	gen.SetPackage(pkgName)

	for i, t := range targets {
		if t.model.PackageName != pkgName {
			return nil, fmt.Errorf("%s 与 %s 不在同一个包中", targets[0].model.Name, t.model.Name)
		}
		if i > 0 {
			gen.Body().AddLine()
		}
		NewCodeGenerator(t.model, gen).Generate()
	}
	return gen, nil
}
