package mixgen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donutnomad/strunemix/internal/structparse"
)

// parseInfo 从源码字符串解析结构体
func parseInfo(t *testing.T, src, name string) *structparse.StructInfo {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "models.go", src, parser.ParseComments)
	require.NoError(t, err)

	var spec *ast.TypeSpec
	ast.Inspect(file, func(n ast.Node) bool {
		if ts, ok := n.(*ast.TypeSpec); ok && ts.Name.Name == name {
			spec = ts
		}
		return spec == nil
	})
	require.NotNil(t, spec, "未找到 %s", name)

	info, err := structparse.ParseTypeSpec(fset, file, spec, "models.go")
	require.NoError(t, err)
	return info
}

func defaultParams() MixParams {
	return MixParams{Label: "source", Parse: "none"}
}

const personSrc = `package models

type Person struct {
	name string
	age  int
}
`

func TestBuildModelBasic(t *testing.T) {
	m, err := BuildModel(parseInfo(t, personSrc, "Person"), defaultParams())
	require.NoError(t, err)

	want := []Field{
		{Name: "name", Label: "name", Variant: "Name", Type: "string"},
		{Name: "age", Label: "age", Variant: "Age", Type: "int"},
	}
	if diff := cmp.Diff(want, m.Fields); diff != "" {
		t.Errorf("字段不符 (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.CanRebuild())
	assert.Equal(t, []string{DeriveString}, m.NameDerives)
	assert.Empty(t, m.DataDerives)
	assert.Equal(t, DefaultNone, m.Default)
	assert.Equal(t, "models", m.PackageName)
}

func TestBuildModelLabelSnake(t *testing.T) {
	src := `package models

type Account struct {
	UserID    int64
	FirstName string
	Email     string
}
`
	params := defaultParams()
	params.Label = "snake"
	m, err := BuildModel(parseInfo(t, src, "Account"), params)
	require.NoError(t, err)

	labels := make([]string, 0, len(m.Fields))
	variants := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		labels = append(labels, f.Label)
		variants = append(variants, f.Variant)
	}
	assert.Equal(t, []string{"user_id", "first_name", "email"}, labels)
	assert.Equal(t, []string{"UserID", "FirstName", "Email"}, variants)
}

// TestBuildModelSkip 跳过的字段与默认值来源
func TestBuildModelSkip(t *testing.T) {
	src := `package models

type Session struct {
	Token   string
	Expires int64
	cache   map[string]string ` + "`strunemix:\"skip\"`" + `
	_       struct{}
}
`
	info := parseInfo(t, src, "Session")

	m, err := BuildModel(info, defaultParams())
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, []Field{{Name: "cache", Type: "map[string]string"}}, m.Skipped)
	assert.False(t, m.CanRebuild())

	params := defaultParams()
	params.Default = "zero"
	m, err = BuildModel(info, params)
	require.NoError(t, err)
	assert.Equal(t, DefaultZero, m.Default)
	assert.True(t, m.CanRebuild())

	params.Default = "NewSession"
	m, err = BuildModel(info, params)
	require.NoError(t, err)
	assert.Equal(t, DefaultFunc, m.Default)
	assert.Equal(t, "NewSession", m.DefaultFunc)

	params.Default = "new session"
	_, err = BuildModel(info, params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "不是合法的函数名")
}

func TestBuildModelDerives(t *testing.T) {
	info := parseInfo(t, personSrc, "Person")

	tests := []struct {
		name       string
		params     MixParams
		wantName   []string
		wantData   []string
		wantErrMsg string
	}{
		{
			name:     "专用列表优先",
			params:   MixParams{Derive: "String", NameDerive: "json|text", DataDerive: "JSON"},
			wantName: []string{DeriveJSON, DeriveText},
			wantData: []string{DeriveJSON},
		},
		{
			name:     "共用列表",
			params:   MixParams{Derive: "String|JSON"},
			wantName: []string{DeriveString, DeriveJSON},
			wantData: []string{DeriveString, DeriveJSON},
		},
		{
			name:   "none",
			params: MixParams{NameDerive: "none", DataDerive: "NONE"},
		},
		{
			name:     "重复项去重",
			params:   MixParams{NameDerive: "String| string |Compare"},
			wantName: []string{DeriveString, DeriveCompare},
		},
		{
			name:       "共用列表对字段值枚举无效",
			params:     MixParams{Derive: "Compare"},
			wantErrMsg: "derive 不支持 Compare",
		},
		{
			name:       "未知 derive",
			params:     MixParams{NameDerive: "Hash"},
			wantErrMsg: "name_derive 不支持 Hash，可选值: String|Text|JSON|Compare",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := BuildModel(info, tt.params)
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, m.NameDerives)
			assert.Equal(t, tt.wantData, m.DataDerives)
		})
	}
}

func TestBuildModelAutoParse(t *testing.T) {
	src := `package models

import "time"

type Sample struct {
	S  string
	B  bool
	R  rune
	I8 int8
	U  uint
	F  float64
	T  time.Time
}
`
	info := parseInfo(t, src, "Sample")
	params := defaultParams()
	params.Parse = "auto"

	_, err := BuildModel(info, params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse=auto 不支持字段 T 的类型 time.Time")

	// 去掉 T 后都是基本类型
	info.Fields = info.Fields[:len(info.Fields)-1]
	m, err := BuildModel(info, params)
	require.NoError(t, err)
	parsers := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		parsers = append(parsers, f.Parser)
	}
	assert.Equal(t, []string{
		"mix.ParseString(text)",
		"mix.ParseBool(text)",
		"mix.ParseChar(text)",
		"mix.ParseInt[int8](text)",
		"mix.ParseUint[uint](text)",
		"mix.ParseFloat[float64](text)",
	}, parsers)
}

func TestBuildModelAutoParseTypeParam(t *testing.T) {
	src := `package models

type Box[T any] struct {
	Value T
}
`
	params := defaultParams()
	params.Parse = "auto"
	_, err := BuildModel(parseInfo(t, src, "Box"), params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "字段 Value 的类型 T")
}

func TestBuildModelErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		typ     string
		methods []string
		wantErr string
	}{
		{
			name:    "标签值非法",
			src:     "package m\ntype A struct {\n\tX int `strunemix:\"ignore\"`\n}\n",
			typ:     "A",
			wantErr: "字段 X 的 strunemix 标签只能是 skip，得到 \"ignore\"",
		},
		{
			name:    "变体名冲突",
			src:     "package m\ntype A struct {\n\tname string\n\tName string\n}\n",
			typ:     "A",
			wantErr: "字段 name 与 Name 的变体名都是 Name",
		},
		{
			name:    "变体类型与生成的函数同名",
			src:     "package m\ntype Widget struct {\n\tFromLabel string\n\tSize int\n}\n",
			typ:     "Widget",
			wantErr: "字段 FromLabel 生成的 WidgetAttrDataFromLabel 与生成的包级标识符同名",
		},
		{
			name:    "未导出结构体的变体类型冲突",
			src:     "package m\ntype widget struct {\n\tfromLabel string\n}\n",
			typ:     "widget",
			wantErr: "字段 fromLabel 生成的 widgetAttrDataFromLabel 与生成的包级标识符同名",
		},
		{
			name:    "所有字段都被跳过",
			src:     "package m\ntype A struct {\n\tX int `strunemix:\"skip\"`\n}\n",
			typ:     "A",
			wantErr: "A 没有参与生成的字段",
		},
		{
			name:    "空结构体",
			src:     "package m\ntype A struct{}\n",
			typ:     "A",
			wantErr: "A 没有参与生成的字段",
		},
		{
			name:    "字段与生成的方法同名",
			src:     "package m\ntype A struct {\n\tX int\n\tFieldsCount int `strunemix:\"skip\"`\n}\n",
			typ:     "A",
			wantErr: "A 已有字段 FieldsCount",
		},
		{
			name:    "方法与生成的方法同名",
			src:     "package m\ntype A struct {\n\tX int\n}\n",
			typ:     "A",
			methods: []string{"AttrNames"},
			wantErr: "A 已有方法 AttrNames",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := parseInfo(t, tt.src, tt.typ)
			for _, name := range tt.methods {
				info.Methods = append(info.Methods, structparse.MethodInfo{Name: name, ReceiverType: tt.typ})
			}
			_, err := BuildModel(info, defaultParams())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestBuildModelLabelCollision snake 标签冲突，变体名不同
func TestBuildModelLabelCollision(t *testing.T) {
	src := `package m

type A struct {
	HTTPServer string
	HttpServer string
}
`
	params := defaultParams()
	params.Label = "snake"
	_, err := BuildModel(parseInfo(t, src, "A"), params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `字段 HTTPServer 与 HttpServer 的标签都是 "http_server"`)
}

func TestBuildModelImports(t *testing.T) {
	src := `package models

import (
	"time"
	"strings"
	dec "github.com/shopspring/decimal"
)

type Order struct {
	Amount  dec.Decimal
	Created *time.Time
	Note    string ` + "`strunemix:\"skip\"`" + `
}

var _ = strings.TrimSpace
`
	m, err := BuildModel(parseInfo(t, src, "Order"), defaultParams())
	require.NoError(t, err)
	assert.Equal(t, []structparse.ImportInfo{
		{Alias: "time", Path: "time"},
		{Alias: "dec", Path: "github.com/shopspring/decimal", Explicit: true},
	}, m.Imports)
}

func TestUsedImports(t *testing.T) {
	imports := []structparse.ImportInfo{
		{Alias: "time", Path: "time"},
		{Alias: "yaml", Path: "github.com/goccy/go-yaml"},
		{Alias: "json", Path: "encoding/json"},
	}
	got := usedImports(imports, []string{"map[string]yaml.Node", "[]*time.Duration", "int"})
	assert.Equal(t, imports[:2], got)
}
