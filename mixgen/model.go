package mixgen

import (
	"fmt"
	"go/token"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/donutnomad/strunemix/internal/structparse"
	"github.com/donutnomad/strunemix/internal/utils"
)

// TagKey 字段标签的 key，唯一合法的值是 skip
const TagKey = "strunemix"

const tagSkip = "skip"

// 可用的 derive
const (
	DeriveString  = "String"
	DeriveText    = "Text"
	DeriveJSON    = "JSON"
	DeriveCompare = "Compare"
)

var (
	nameDerives = []string{DeriveString, DeriveText, DeriveJSON, DeriveCompare}
	dataDerives = []string{DeriveString, DeriveJSON}
)

// 生成到结构体上的方法，结构体已有同名字段或方法时无法生成
var structMethods = []string{"FieldsCount", "AttrNames", "ToAttrDataArray"}

// DefaultKind 跳过字段的默认值来源
type DefaultKind int

const (
	DefaultNone DefaultKind = iota // 不提供，存在跳过字段时不生成重建函数
	DefaultZero                    // mix.DefaultOf
	DefaultFunc                    // 同包的构造函数
)

// Field 参与生成的字段
type Field struct {
	Name    string // 字段标识符
	Label   string // 规范字符串名
	Variant string // 变体名
	Type    string
	Parser  string // parse=auto 时的解析表达式，参数名为 text
}

// Model 一个结构体的生成模型
type Model struct {
	Name        string
	PackageName string
	TypeParams  []structparse.TypeParam
	Imports     []structparse.ImportInfo // 字段类型用到的导入

	Fields  []Field // 按声明顺序
	Skipped []Field // 被跳过的字段，只有 Name 与 Type

	Default     DefaultKind
	DefaultFunc string

	NameDerives []string
	DataDerives []string
	AutoParse   bool
}

// Count 字段数量
func (m *Model) Count() int {
	return len(m.Fields)
}

// CanRebuild 是否能从字段值数组重建结构体
func (m *Model) CanRebuild() bool {
	return len(m.Skipped) == 0 || m.Default != DefaultNone
}

// HasNameDerive 字段名枚举是否启用 derive
func (m *Model) HasNameDerive(d string) bool {
	return slices.Contains(m.NameDerives, d)
}

// HasDataDerive 字段值枚举是否启用 derive
func (m *Model) HasDataDerive(d string) bool {
	return slices.Contains(m.DataDerives, d)
}

// BuildModel 按注解参数与字段标签构建生成模型
func BuildModel(info *structparse.StructInfo, params MixParams) (*Model, error) {
	m := &Model{
		Name:        info.Name,
		PackageName: info.PackageName,
		TypeParams:  info.TypeParams,
		AutoParse:   params.Parse == "auto",
	}

	var err error
	if m.NameDerives, err = resolveDerives("name_derive", params.NameDerive, params.Derive, []string{DeriveString}, nameDerives); err != nil {
		return nil, err
	}
	if m.DataDerives, err = resolveDerives("data_derive", params.DataDerive, params.Derive, nil, dataDerives); err != nil {
		return nil, err
	}

	switch def := strings.TrimSpace(params.Default); def {
	case "":
		m.Default = DefaultNone
	case "zero":
		m.Default = DefaultZero
	default:
		if !token.IsIdentifier(def) {
			return nil, fmt.Errorf("default=%q 不是合法的函数名", def)
		}
		m.Default, m.DefaultFunc = DefaultFunc, def
	}

	typeParams := lo.Map(info.TypeParams, func(p structparse.TypeParam, _ int) string { return p.Name })
	variants := make(map[string]string)
	labels := make(map[string]string)
	reserved := packageNames(m.Name)

	for _, f := range info.Fields {
		// 空白字段无法读写，不参与生成
		if f.Name == "_" {
			continue
		}
		if v, ok := f.Lookup(TagKey); ok {
			if v != tagSkip {
				return nil, fmt.Errorf("%s: 字段 %s 的 %s 标签只能是 %s，得到 %q", f.Position, f.Name, TagKey, tagSkip, v)
			}
			m.Skipped = append(m.Skipped, Field{Name: f.Name, Type: f.Type})
			continue
		}

		field := Field{
			Name:    f.Name,
			Label:   f.Name,
			Variant: utils.UpperCamelCase(f.Name),
			Type:    f.Type,
		}
		if params.Label == "snake" {
			field.Label = utils.ToSnakeCase(f.Name)
		}
		if prev, ok := variants[field.Variant]; ok {
			return nil, fmt.Errorf("字段 %s 与 %s 的变体名都是 %s", prev, f.Name, field.Variant)
		}
		if prev, ok := labels[field.Label]; ok {
			return nil, fmt.Errorf("字段 %s 与 %s 的标签都是 %q", prev, f.Name, field.Label)
		}
		for _, id := range []string{m.Name + "AttrName" + field.Variant, m.Name + "AttrData" + field.Variant} {
			if slices.Contains(reserved, id) {
				return nil, fmt.Errorf("字段 %s 生成的 %s 与生成的包级标识符同名", f.Name, id)
			}
		}
		variants[field.Variant] = f.Name
		labels[field.Label] = f.Name

		if m.AutoParse {
			parser, ok := primitiveParser(f.Type, typeParams)
			if !ok {
				return nil, fmt.Errorf("parse=auto 不支持字段 %s 的类型 %s，只支持基本类型", f.Name, f.Type)
			}
			field.Parser = parser
		}
		m.Fields = append(m.Fields, field)
	}

	if len(m.Fields) == 0 {
		return nil, fmt.Errorf("%s 没有参与生成的字段", info.Name)
	}

	for _, name := range structMethods {
		if _, ok := info.Field(name); ok {
			return nil, fmt.Errorf("%s 已有字段 %s，与生成的方法冲突", info.Name, name)
		}
		if info.HasMethod(name) {
			return nil, fmt.Errorf("%s 已有方法 %s，与生成的方法冲突", info.Name, name)
		}
	}

	m.Imports = usedImports(info.Imports, lo.Map(m.Fields, func(f Field, _ int) string { return f.Type }))
	return m, nil
}

// packageNames 除字段常量与变体类型外生成的全部包级标识符
func packageNames(name string) []string {
	return []string{
		name + "AttrName",
		name + "AttrNames",
		"_" + name + "AttrNames",
		name + "FieldsCount",
		verbName(name, "Parse", name+"AttrName"),
		name + "AttrData",
		name + "AttrDataFromLabel",
		verbName(name, "Parse", name+"AttrData"),
		verbName(name, "Decode", name+"AttrData"),
		verbName(name, "Unmarshal", name+"AttrData"),
		name + "FromAttrDataArray",
		name + "Form",
		name + "EmptyForm",
		name + "ToForm",
		name + "FromForm",
	}
}

// verbName 以动词开头的函数名，导出性与结构体一致
func verbName(structName, verb, rest string) string {
	if isExported(structName) {
		return verb + rest
	}
	return strings.ToLower(verb[:1]) + verb[1:] + upperFirst(rest)
}

// resolveDerives 专用列表优先于 derive，derive 优先于默认值；none 表示空列表
func resolveDerives(param, specific, shared string, def, allowed []string) ([]string, error) {
	raw, source := specific, param
	if raw == "" {
		raw, source = shared, "derive"
	}
	if raw == "" {
		return def, nil
	}
	if strings.EqualFold(raw, "none") {
		return nil, nil
	}

	var out []string
	for _, item := range strings.Split(raw, "|") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		d, ok := lo.Find(allowed, func(a string) bool { return strings.EqualFold(a, item) })
		if !ok {
			return nil, fmt.Errorf("%s 不支持 %s，可选值: %s", source, item, strings.Join(allowed, "|"))
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// primitiveParser 返回基本类型的解析表达式
func primitiveParser(typ string, typeParams []string) (string, bool) {
	if slices.Contains(typeParams, typ) {
		return "", false
	}
	switch typ {
	case "string":
		return "mix.ParseString(text)", true
	case "bool":
		return "mix.ParseBool(text)", true
	case "rune":
		return "mix.ParseChar(text)", true
	case "int", "int8", "int16", "int32", "int64":
		return fmt.Sprintf("mix.ParseInt[%s](text)", typ), true
	case "uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "byte":
		return fmt.Sprintf("mix.ParseUint[%s](text)", typ), true
	case "float32", "float64":
		return fmt.Sprintf("mix.ParseFloat[%s](text)", typ), true
	}
	return "", false
}

var qualifierRegex = regexp.MustCompile(`\b([A-Za-z_]\w*)\.`)

// usedImports 过滤出字段类型中引用到的导入
func usedImports(imports []structparse.ImportInfo, types []string) []structparse.ImportInfo {
	used := make(map[string]bool)
	for _, t := range types {
		for _, match := range qualifierRegex.FindAllStringSubmatch(t, -1) {
			used[match[1]] = true
		}
	}
	return lo.Filter(imports, func(imp structparse.ImportInfo, _ int) bool {
		return used[imp.Alias]
	})
}
