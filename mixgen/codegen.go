package mixgen

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/donutnomad/gg"
	"github.com/samber/lo"

	"github.com/donutnomad/strunemix/internal/structparse"
)

// mixPkgPath 运行时库的导入路径
const mixPkgPath = "github.com/donutnomad/strunemix/mix"

// CodeGenerator 为单个结构体生成伴生枚举
type CodeGenerator struct {
	model *Model
	gen   *gg.Generator

	typeParamsLong  string // [K comparable, V any]
	typeParamsShort string // [K, V]
	meta            string // Form 附加信息的类型参数名
}

// NewCodeGenerator 创建代码生成器，多个结构体可共用同一个 gg.Generator
func NewCodeGenerator(model *Model, gen *gg.Generator) *CodeGenerator {
	long, short := formatTypeParams(model.TypeParams)
	return &CodeGenerator{
		model:           model,
		gen:             gen,
		typeParamsLong:  long,
		typeParamsShort: short,
		meta:            metaParamName(model.TypeParams),
	}
}

// Generate 生成完整的代码
func (c *CodeGenerator) Generate() {
	c.gen.P(mixPkgPath)
	c.gen.P("fmt")
	for _, imp := range c.model.Imports {
		// 包名与路径最后一段不同时必须写别名
		if imp.Explicit || imp.Alias != path.Base(imp.Path) {
			c.gen.PAlias(imp.Path, imp.Alias)
		} else {
			c.gen.P(imp.Path)
		}
	}

	group := c.gen.Body()

	// 字段名枚举
	c.generateNameEnum(group)
	c.generateNameMethods(group)
	c.generateNameDerives(group)

	// 字段值枚举
	c.generateDataEnum(group)
	c.generateDataDerives(group)

	// 结构体与数组、Form 之间的转换
	c.generateStructMethods(group)
	if c.model.CanRebuild() {
		c.generateFromAttrDataArray(group)
	}
	c.generateForm(group)

	if c.model.AutoParse {
		c.generateParseData(group)
	}
}

// ============ 命名 ============

func (c *CodeGenerator) nameType() string  { return c.model.Name + "AttrName" }
func (c *CodeGenerator) countConst() string { return c.model.Name + "FieldsCount" }
func (c *CodeGenerator) namesVar() string   { return "_" + c.model.Name + "AttrNames" }
func (c *CodeGenerator) formType() string   { return c.model.Name + "Form" }

func (c *CodeGenerator) constName(f Field) string {
	return c.nameType() + f.Variant
}

// dataType 字段值接口的引用，泛型结构体带实参
func (c *CodeGenerator) dataType() string {
	return c.model.Name + "AttrData" + c.typeParamsShort
}

func (c *CodeGenerator) variantName(f Field) string {
	return c.model.Name + "AttrData" + f.Variant
}

func (c *CodeGenerator) variantType(f Field) string {
	return c.variantName(f) + c.typeParamsShort
}

func (c *CodeGenerator) structType() string {
	return c.model.Name + c.typeParamsShort
}

// arrayOf [PersonFieldsCount]T
func (c *CodeGenerator) arrayOf(elem string) string {
	return fmt.Sprintf("[%s]%s", c.countConst(), elem)
}

// formParams 带 Form 附加信息参数的类型参数列表
func (c *CodeGenerator) formParams() (long, short string) {
	if c.typeParamsLong == "" {
		return fmt.Sprintf("[%s any]", c.meta), fmt.Sprintf("[%s]", c.meta)
	}
	long = strings.TrimSuffix(c.typeParamsLong, "]") + ", " + c.meta + " any]"
	short = strings.TrimSuffix(c.typeParamsShort, "]") + ", " + c.meta + "]"
	return long, short
}

// mixTypeArgs mix 泛型函数的类型实参 [PersonAttrName, PersonAttrData, M]
func (c *CodeGenerator) mixTypeArgs() string {
	return fmt.Sprintf("[%s, %s, %s]", c.nameType(), c.dataType(), c.meta)
}

// funcName 以动词开头的函数名，导出性与结构体一致
func (c *CodeGenerator) funcName(verb, rest string) string {
	return verbName(c.model.Name, verb, rest)
}

// ============ 字段名枚举 ============

func (c *CodeGenerator) generateNameEnum(group *gg.Group) {
	typeName := c.nameType()

	group.AddLine()
	group.Append(gg.LineComment("%s %s 的字段名枚举", typeName, c.model.Name))
	group.Append(gg.Type(typeName, "int"))

	group.AddLine()
	constGroup := gg.Const()
	for i, f := range c.model.Fields {
		constGroup.AddTypedField(c.constName(f), typeName, gg.Lit(i))
	}
	group.Append(constGroup)

	group.AddLine()
	group.Append(gg.LineComment("%s 参与生成的字段数量", c.countConst()))
	group.Append(gg.S("const %s = %d", c.countConst(), c.model.Count()))

	constNames := lo.Map(c.model.Fields, func(f Field, _ int) string { return c.constName(f) })

	group.AddLine()
	group.Append(gg.S("var %s = []%s{%s}", c.namesVar(), typeName, strings.Join(constNames, ", ")))

	group.AddLine()
	group.Append(gg.LineComment("%s 按声明顺序返回所有字段名", typeName+"s"))
	group.NewFunction(typeName+"s").
		AddResult("", c.arrayOf(typeName)).
		AddBody(gg.S("return %s{%s}", c.arrayOf(typeName), strings.Join(constNames, ", ")))
}

func (c *CodeGenerator) generateNameMethods(group *gg.Group) {
	typeName := c.nameType()

	// Label
	group.AddLine()
	group.Append(gg.LineComment("Label 返回字段的规范字符串名"))
	sw := gg.Switch("n")
	for _, f := range c.model.Fields {
		sw.NewCase(gg.S(c.constName(f))).AddBody(gg.Return(gg.Lit(f.Label)))
	}
	group.NewFunction("Label").
		WithReceiver("n", typeName).
		AddResult("", "string").
		AddBody(sw, gg.S("return fmt.Sprintf(%s, int(n))", gg.Lit(typeName+"(%d)")))

	group.AddLine()
	group.NewFunction("EnumName").
		WithReceiver("n", typeName).
		AddResult("", "string").
		AddBody(gg.Return(gg.Lit(typeName)))

	group.AddLine()
	group.NewFunction("Index").
		WithReceiver("n", typeName).
		AddResult("", "int").
		AddBody(gg.S("return int(n)"))

	group.AddLine()
	group.NewFunction("IsValid").
		WithReceiver("n", typeName).
		AddResult("", "bool").
		AddBody(gg.S("return n >= 0 && n < %s", c.countConst()))

	// Parse
	parseName := c.funcName("Parse", typeName)
	group.AddLine()
	group.Append(gg.LineComment("%s 将字符串解析为字段名", parseName))
	parseSwitch := gg.Switch("s")
	for _, f := range c.model.Fields {
		parseSwitch.NewCase(gg.Lit(f.Label)).AddBody(gg.S("return %s, nil", c.constName(f)))
	}
	group.NewFunction(parseName).
		AddParameter("s", "string").
		AddResult("", typeName).
		AddResult("", "error").
		AddBody(parseSwitch, gg.S("return 0, mix.NotAnEnumName(s, %s)", gg.Lit(typeName)))
}

func (c *CodeGenerator) generateNameDerives(group *gg.Group) {
	typeName := c.nameType()

	if c.model.HasNameDerive(DeriveString) {
		group.AddLine()
		group.NewFunction("String").
			WithReceiver("n", typeName).
			AddResult("", "string").
			AddBody(gg.S("return n.Label()"))
	}

	if c.model.HasNameDerive(DeriveText) {
		group.AddLine()
		group.NewFunction("MarshalText").
			WithReceiver("n", typeName).
			AddResult("", "[]byte").
			AddResult("", "error").
			AddBody(gg.S("return []byte(n.Label()), nil"))

		group.AddLine()
		group.NewFunction("UnmarshalText").
			WithReceiver("n", "*"+typeName).
			AddParameter("b", "[]byte").
			AddResult("", "error").
			AddBody(
				gg.S("v, err := %s(string(b))", c.funcName("Parse", typeName)),
				gg.If("err != nil").AddBody(gg.S("return err")),
				gg.S("*n = v"),
				gg.S("return nil"),
			)
	}

	if c.model.HasNameDerive(DeriveJSON) {
		group.AddLine()
		group.NewFunction("MarshalJSON").
			WithReceiver("n", typeName).
			AddResult("", "[]byte").
			AddResult("", "error").
			AddBody(gg.S("return mix.MarshalLabel(n)"))

		group.AddLine()
		group.NewFunction("UnmarshalJSON").
			WithReceiver("n", "*"+typeName).
			AddParameter("b", "[]byte").
			AddResult("", "error").
			AddBody(
				gg.S("v, err := mix.UnmarshalLabel(%s, b)", c.namesVar()),
				gg.If("err != nil").AddBody(gg.S("return err")),
				gg.S("*n = v"),
				gg.S("return nil"),
			)
	}

	if c.model.HasNameDerive(DeriveCompare) {
		c.gen.P("cmp")
		group.AddLine()
		group.NewFunction("Compare").
			WithReceiver("n", typeName).
			AddParameter("other", typeName).
			AddResult("", "int").
			AddBody(gg.S("return cmp.Compare(n, other)"))
	}
}

// ============ 字段值枚举 ============

func (c *CodeGenerator) generateDataEnum(group *gg.Group) {
	dataName := c.model.Name + "AttrData"
	marker := "is" + upperFirst(dataName)

	group.AddLine()
	group.Append(gg.LineComment("%s %s 的字段值枚举，每个字段一个变体", dataName, c.model.Name))
	group.Append(gg.S("type %s%s interface {\n\tmix.Data[%s]\n\t%s()\n}", dataName, c.typeParamsLong, c.nameType(), marker))

	for _, f := range c.model.Fields {
		variant := c.variantName(f)
		recv := c.variantType(f)

		group.AddLine()
		st := gg.Struct(variant + c.typeParamsLong)
		st.AddField("Value", f.Type)
		group.Append(st)

		group.AddLine()
		group.NewFunction("AttrName").
			WithReceiver("d", recv).
			AddResult("", c.nameType()).
			AddBody(gg.Return(gg.S(c.constName(f))))

		group.AddLine()
		group.NewFunction("AttrValue").
			WithReceiver("d", recv).
			AddResult("", "any").
			AddBody(gg.S("return d.Value"))

		// gg 不输出空函数体，标记方法直接写出
		group.AddLine()
		group.Append(gg.S("func (d %s) %s() {}", recv, marker))
	}
}

func (c *CodeGenerator) generateDataDerives(group *gg.Group) {
	for _, f := range c.model.Fields {
		recv := c.variantType(f)
		if c.model.HasDataDerive(DeriveString) {
			group.AddLine()
			group.NewFunction("String").
				WithReceiver("d", recv).
				AddResult("", "string").
				AddBody(gg.S("return mix.FormatData[%s](d)", c.nameType()))
		}
		if c.model.HasDataDerive(DeriveJSON) {
			group.AddLine()
			group.NewFunction("MarshalJSON").
				WithReceiver("d", recv).
				AddResult("", "[]byte").
				AddResult("", "error").
				AddBody(gg.S("return mix.MarshalData[%s](d)", c.nameType()))
		}
	}

	if !c.model.HasDataDerive(DeriveJSON) {
		return
	}

	// Decode 按字段名解码单个值，可直接传给 Form.Fill
	decodeName := c.funcName("Decode", c.model.Name+"AttrData")
	group.AddLine()
	group.Append(gg.LineComment("%s 按字段名解码 JSON 值", decodeName))
	sw := gg.Switch("name")
	for _, f := range c.model.Fields {
		sw.NewCase(gg.S(c.constName(f))).AddBody(
			gg.S("v, err := mix.DecodeValue[%s](raw)", f.Type),
			gg.If("err != nil").AddBody(gg.S("return nil, err")),
			gg.S("return %s{Value: v}, nil", c.variantType(f)),
		)
	}
	group.NewFunction(decodeName+c.typeParamsLong).
		AddParameter("name", c.nameType()).
		AddParameter("raw", "[]byte").
		AddResult("", c.dataType()).
		AddResult("", "error").
		AddBody(sw, gg.S("return nil, mix.NotAnEnumName(name.Label(), name.EnumName())"))

	unmarshalName := c.funcName("Unmarshal", c.model.Name+"AttrData")
	group.AddLine()
	group.Append(gg.LineComment("%s 解码 {\"label\": value}", unmarshalName))
	group.NewFunction(unmarshalName+c.typeParamsLong).
		AddParameter("b", "[]byte").
		AddResult("", c.dataType()).
		AddResult("", "error").
		AddBody(
			gg.S("label, raw, err := mix.SplitData(b)"),
			gg.If("err != nil").AddBody(gg.S("return nil, err")),
			gg.S("name, err := %s(label)", c.funcName("Parse", c.nameType())),
			gg.If("err != nil").AddBody(gg.S("return nil, err")),
			gg.S("return %s%s(name, raw)", decodeName, c.typeParamsShort),
		)
}

// ============ 结构体转换 ============

func (c *CodeGenerator) generateStructMethods(group *gg.Group) {
	structType := c.structType()

	group.AddLine()
	group.NewFunction("FieldsCount").
		WithReceiver("s", structType).
		AddResult("", "int").
		AddBody(gg.Return(gg.S(c.countConst())))

	group.AddLine()
	group.NewFunction("AttrNames").
		WithReceiver("s", structType).
		AddResult("", c.arrayOf(c.nameType())).
		AddBody(gg.S("return %ss()", c.nameType()))

	values := lo.Map(c.model.Fields, func(f Field, _ int) string {
		return fmt.Sprintf("\t%s{Value: s.%s},", c.variantType(f), f.Name)
	})
	group.AddLine()
	group.Append(gg.LineComment("ToAttrDataArray 按声明顺序返回所有字段值"))
	group.NewFunction("ToAttrDataArray").
		WithReceiver("s", structType).
		AddResult("", c.arrayOf(c.dataType())).
		AddBody(gg.S("return %s{\n%s\n}", c.arrayOf(c.dataType()), strings.Join(values, "\n")))
}

// generateFromAttrDataArray 跳过的字段取自默认值，其余字段按位置取自数组
func (c *CodeGenerator) generateFromAttrDataArray(group *gg.Group) {
	structType := c.structType()
	fnName := c.model.Name + "FromAttrDataArray"

	var body []any
	switch c.model.Default {
	case DefaultZero:
		body = append(body, gg.S("s := mix.DefaultOf[%s]()", structType))
	case DefaultFunc:
		body = append(body, gg.S("s := %s%s()", c.model.DefaultFunc, c.typeParamsShort))
	default:
		body = append(body, gg.S("var s %s", structType))
	}
	for i, f := range c.model.Fields {
		body = append(body,
			gg.S("v%d, ok := data[%d].(%s)", i, i, c.variantType(f)),
			gg.If("!ok").AddBody(
				gg.S("return %s{}, mix.WrongOrder[%s](%d, %s, data[%d])", structType, c.nameType(), i, c.constName(f), i),
			),
			gg.S("s.%s = v%d.Value", f.Name, i),
		)
	}
	body = append(body, gg.S("return s, nil"))

	group.AddLine()
	group.Append(gg.LineComment("%s 从字段值数组重建 %s，数组顺序必须与声明顺序一致", fnName, c.model.Name))
	group.NewFunction(fnName+c.typeParamsLong).
		AddParameter("data", c.arrayOf(c.dataType())).
		AddResult("", structType).
		AddResult("", "error").
		AddBody(body...)
}

func (c *CodeGenerator) generateForm(group *gg.Group) {
	long, short := c.formParams()
	formRef := c.formType() + short
	structType := c.structType()

	group.AddLine()
	group.Append(gg.LineComment("%s 以字段名为键的 %s 表单", c.formType(), c.model.Name))
	group.Append(gg.S("type %s%s = mix.Form%s", c.formType(), long, c.mixTypeArgs()))

	group.AddLine()
	group.Append(gg.LineComment("%sEmptyForm 所有字段都未填写的表单", c.model.Name))
	group.NewFunction(c.model.Name+"EmptyForm"+long).
		AddResult("", "*"+formRef).
		AddBody(gg.S("return mix.NewForm%s(%s)", c.mixTypeArgs(), c.namesVar()))

	group.AddLine()
	group.Append(gg.LineComment("%sToForm 所有字段都已填写的表单", c.model.Name))
	group.NewFunction(c.model.Name+"ToForm"+long).
		AddParameter("s", structType).
		AddResult("", "*"+formRef).
		AddBody(
			gg.S("data := s.ToAttrDataArray()"),
			gg.S("return mix.MustFormOf%s(%s, data[:])", c.mixTypeArgs(), c.namesVar()),
		)

	if c.model.CanRebuild() {
		group.AddLine()
		group.Append(gg.LineComment("%sFromForm 表单填写完整时重建 %s", c.model.Name, c.model.Name))
		group.NewFunction(c.model.Name+"FromForm"+long).
			AddParameter("f", "*"+formRef).
			AddResult("", structType).
			AddResult("", "error").
			AddBody(
				gg.S("data, err := f.ToDataSlice()"),
				gg.If("err != nil").AddBody(gg.S("return %s{}, err", structType)),
				gg.S("return %sFromAttrDataArray%s(%s(data))", c.model.Name, c.typeParamsShort, c.arrayOf(c.dataType())),
			)
	}

	fromLabel := c.dataTypeName() + "FromLabel"
	group.AddLine()
	group.Append(gg.LineComment("%s 先解析字段名，再用 parse 解析字段值", fromLabel))
	group.NewFunction(fromLabel+c.typeParamsLong).
		AddParameters([]string{"label", "text"}, "string").
		AddParameter("parse", fmt.Sprintf("mix.ParseFunc[%s, %s]", c.nameType(), c.dataType())).
		AddResult("", c.dataType()).
		AddResult("", "error").
		AddBody(gg.S("return mix.FromLabel[%s, %s](%s, label, text, parse)", c.nameType(), c.dataType(), c.namesVar()))
}

func (c *CodeGenerator) dataTypeName() string {
	return c.model.Name + "AttrData"
}

// generateParseData parse=auto 时生成基本类型的解析函数，可作为 mix.ParseFunc 使用
func (c *CodeGenerator) generateParseData(group *gg.Group) {
	parseName := c.funcName("Parse", c.dataTypeName())

	sw := gg.Switch("name")
	for _, f := range c.model.Fields {
		sw.NewCase(gg.S(c.constName(f))).AddBody(
			gg.S("v, err := %s", f.Parser),
			gg.If("err != nil").AddBody(gg.S("return nil, err")),
			gg.S("return %s{Value: v}, nil", c.variantType(f)),
		)
	}

	group.AddLine()
	group.Append(gg.LineComment("%s 按字段类型解析字符串", parseName))
	group.NewFunction(parseName+c.typeParamsLong).
		AddParameter("name", c.nameType()).
		AddParameter("text", "string").
		AddResult("", c.dataType()).
		AddResult("", "error").
		AddBody(sw, gg.S("return nil, mix.NotAnEnumName(name.Label(), name.EnumName())"))
}

// ============ 工具函数 ============

// formatTypeParams 返回 [K comparable, V any] 与 [K, V]，非泛型返回空串
func formatTypeParams(params []structparse.TypeParam) (long, short string) {
	if len(params) == 0 {
		return "", ""
	}
	longParts := lo.Map(params, func(p structparse.TypeParam, _ int) string { return p.Name + " " + p.Constraint })
	shortParts := lo.Map(params, func(p structparse.TypeParam, _ int) string { return p.Name })
	return "[" + strings.Join(longParts, ", ") + "]", "[" + strings.Join(shortParts, ", ") + "]"
}

// metaParamName 避开结构体已有的类型参数名
func metaParamName(params []structparse.TypeParam) string {
	names := lo.Map(params, func(p structparse.TypeParam, _ int) string { return p.Name })
	for _, candidate := range []string{"M", "Meta", "MetaT"} {
		if !slices.Contains(names, candidate) {
			return candidate
		}
	}
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("M%d", i)
		if !slices.Contains(names, candidate) {
			return candidate
		}
	}
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
