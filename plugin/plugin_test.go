package plugin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donutnomad/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "simple annotation", input: "// @Strunemix", expected: 1},
		{name: "annotation with params", input: "// @Strunemix(default=zero, label=snake)", expected: 1},
		{name: "multiple annotations", input: "// @Strunemix @Other", expected: 2},
		{name: "multiline annotations", input: "// @Strunemix(label=`snake`)\n// @Other(x=`1`)", expected: 2},
		{name: "no annotation", input: "// This is a comment", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotations := ParseAnnotations(tt.input)
			if len(annotations) != tt.expected {
				t.Errorf("expected %d annotations, got %d", tt.expected, len(annotations))
			}
		})
	}
}

func TestAnnotationParamFormats(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedParams map[string]string
	}{
		{
			name:           "反引号",
			input:          "// @Strunemix(default=`NewPerson`, output=`$FILE_fields`)",
			expectedParams: map[string]string{"default": "NewPerson", "output": "$FILE_fields"},
		},
		{
			name:           "双引号",
			input:          `// @Strunemix(name_derive="String|JSON")`,
			expectedParams: map[string]string{"name_derive": "String|JSON"},
		},
		{
			name:           "普通格式无空格",
			input:          "// @Strunemix(label=snake,parse=auto)",
			expectedParams: map[string]string{"label": "snake", "parse": "auto"},
		},
		{
			name:           "key 不区分大小写",
			input:          "// @Strunemix(Label=snake)",
			expectedParams: map[string]string{"label": "snake"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotations := ParseAnnotations(tt.input)
			require.Len(t, annotations, 1)
			assert.Equal(t, tt.expectedParams, annotations[0].Params)
		})
	}
}

func TestAnnotationAccessors(t *testing.T) {
	ann := ParseAnnotations("// @Strunemix(label=snake, default=zero)")[0]

	assert.Equal(t, "Strunemix", ann.Name)
	assert.Equal(t, "snake", ann.GetParam("LABEL"))
	assert.Equal(t, "none", ann.GetParamOr("parse", "none"))
	assert.True(t, ann.HasParam("default"))
	assert.False(t, ann.HasParam("derive"))
	assert.Equal(t, []string{"default", "label"}, ann.ParamKeys())
}

// testGenerator 测试用生成器，为每个目标生成一个返回类型名的函数
type testGenerator struct {
	BaseGenerator
}

func newTestGenerator(name, annotation string, targets ...TargetKind) *testGenerator {
	if len(targets) == 0 {
		targets = []TargetKind{TargetStruct}
	}
	return &testGenerator{BaseGenerator: *NewBaseGenerator(name, []string{annotation}, targets)}
}

func (g *testGenerator) Generate(ctx *GenerateContext) (*GenerateResult, error) {
	result := NewGenerateResult()
	for _, target := range ctx.Targets {
		gen := gg.New()
		gen.SetPackage(target.Target.PackageName)
		gen.Body().NewFunction("Describe"+target.Target.Name).
			AddResult("", "string").
			AddBody(gg.Return(gg.Lit("describing " + target.Target.Name)))

		ann := GetAnnotation(target.Annotations, g.Annotations()[0])
		path := GetOutputPath(target.Target, ann, "$TYPE_describe.go", ctx.GetPackageConfig(target.Target.FilePath), g.Name(), ctx.DefaultOutput)
		dir, base := filepath.Split(path)
		result.AddDefinition(filepath.Join(dir, strings.ToLower(base)), gen)
	}
	return result, nil
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	gen1 := newTestGenerator("gen1", "Mix")
	gen2 := newTestGenerator("gen2", "Other", TargetStruct, TargetType)
	gen2.SetPriority(10)

	require.NoError(t, registry.Register(gen1))
	require.NoError(t, registry.Register(gen2))

	assert.True(t, registry.IsRegistered("Mix"))
	assert.True(t, registry.IsRegistered("Other"))
	assert.False(t, registry.IsRegistered("Missing"))

	assert.Error(t, registry.Register(newTestGenerator("gen3", "Mix")), "duplicate annotation")
	assert.Error(t, registry.Register(newTestGenerator("gen1", "Fresh")), "duplicate generator name")

	gen, ok := registry.GetByAnnotation("Mix")
	require.True(t, ok)
	assert.Equal(t, "gen1", gen.Name())

	names := []string{}
	for _, g := range registry.Generators() {
		names = append(names, g.Name())
	}
	assert.Equal(t, []string{"gen2", "gen1"}, names, "sorted by priority")
	assert.Equal(t, []string{"Mix", "Other"}, registry.Annotations())

	assert.True(t, gen2.Supports(TargetType))
	assert.False(t, gen2.Supports(TargetInterface))
	assert.False(t, gen1.Supports(TargetType))
}

func TestRegistry_DispatchReportsUnsupportedTargets(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(newTestGenerator("mix", "Mix"))

	result := &ScanResult{
		Structs: []*AnnotatedTarget{{
			Target:      &Target{Kind: TargetStruct, Name: "Person"},
			Annotations: []*Annotation{{Name: "Mix"}, {Name: "Unknown"}},
		}},
		Types: []*AnnotatedTarget{{
			Target:      &Target{Kind: TargetType, Name: "Status"},
			Annotations: []*Annotation{{Name: "Mix"}},
		}},
	}

	dispatch, errs := registry.DispatchTargets(result)
	require.Len(t, dispatch["mix"], 1)
	assert.Equal(t, "Person", dispatch["mix"][0].Target.Name)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "@Mix 只能用于 struct")
	assert.Contains(t, errs[0].Error(), "Status 是 type")
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanner(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "model.go"), `package model

// @Mix(label=`+"`snake`"+`)
type User struct {
	ID   uint
	Name string
}

// @Mix
type UserService interface {
	GetUser(id uint) *User
}

// @Mix
type Status int

type (
	// @Mix
	Order struct{ ID uint }

	Plain struct{}
)

// @Mix
func helper() {}
`)
	writeTestFile(t, filepath.Join(tmpDir, "model_mix.go"), `// Code generated by strunemix. DO NOT EDIT.

package model

// @Mix
type Generated struct{}
`)
	writeTestFile(t, filepath.Join(tmpDir, "model_test.go"), `package model

// @Mix
type InTest struct{}
`)

	result, err := NewScanner().Scan(context.Background(), tmpDir)
	require.NoError(t, err)

	require.Len(t, result.Structs, 2)
	assert.Equal(t, "User", result.Structs[0].Target.Name)
	assert.Equal(t, "Order", result.Structs[1].Target.Name)
	require.Len(t, result.Interfaces, 1)
	assert.Equal(t, TargetInterface, result.Interfaces[0].Target.Kind)
	require.Len(t, result.Types, 1)
	assert.Equal(t, "Status", result.Types[0].Target.Name)
	assert.Equal(t, TargetType, result.Types[0].Target.Kind)

	user := result.Structs[0]
	assert.Equal(t, "model", user.Target.PackageName)
	assert.Equal(t, 4, user.Target.Position.Line)
	assert.NotNil(t, user.Target.Node)
	assert.Equal(t, "snake", GetAnnotation(user.Annotations, "Mix").GetParam("label"))

	assert.Len(t, result.ByAnnotation("Mix"), 4)
}

func TestScannerWithFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "model.go"), `package model

// @Mix
type User struct {}

// @Other
type Order struct {}
`)

	result, err := NewScanner(WithAnnotationFilter("Mix"), WithWorkers(1)).Scan(context.Background(), tmpDir)
	require.NoError(t, err)
	require.Len(t, result.Structs, 1)
	assert.Equal(t, "User", result.Structs[0].Target.Name)
}

func TestScannerRecursive(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "root.go"), "package root\n// @Mix\ntype RootModel struct {}\n")
	writeTestFile(t, filepath.Join(tmpDir, "sub", "sub.go"), "package sub\n// @Mix\ntype SubModel struct {}\n")
	writeTestFile(t, filepath.Join(tmpDir, "testdata", "skip.go"), "package skip\n// @Mix\ntype Skipped struct {}\n")

	result, err := NewScanner().Scan(context.Background(), tmpDir+"/...")
	require.NoError(t, err)
	assert.Len(t, result.Structs, 2)

	result, err = NewScanner().Scan(context.Background(), tmpDir)
	require.NoError(t, err)
	assert.Len(t, result.Structs, 1, "non-recursive pattern only scans the directory itself")
}

func TestScannerCanceled(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "a.go"), "package a\n// @Mix\ntype A struct {}\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner().Scan(ctx, tmpDir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPackageDirective(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		defaultOutput string
		pluginOutputs map[string]string
		isNil         bool
	}{
		{name: "默认输出", line: "-output `$FILE_fields`", defaultOutput: "$FILE_fields", pluginOutputs: map[string]string{}},
		{name: "插件输出", line: `plugin:Strunemix -output "mix gen"`, pluginOutputs: map[string]string{"strunemix": "mix gen"}},
		{
			name:          "混合",
			line:          "-output all plugin:strunemix -output mix",
			defaultOutput: "all",
			pluginOutputs: map[string]string{"strunemix": "mix"},
		},
		{name: "空", line: "  ", isNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parseDirectiveLine(tt.line, "/src/pkg/a.go")
			if tt.isNil {
				assert.Nil(t, cfg)
				return
			}
			require.NotNil(t, cfg)
			assert.Equal(t, "/src/pkg", cfg.PackageDir)
			assert.Equal(t, tt.defaultOutput, cfg.DefaultOutput)
			assert.Equal(t, tt.pluginOutputs, cfg.PluginOutputs)
		})
	}
}

func TestGetOutputPath(t *testing.T) {
	target := &Target{Name: "Person", PackageName: "model", FilePath: "/src/model/person.go"}
	pkg := &PackageConfig{DefaultOutput: "pkg_default", PluginOutputs: map[string]string{"mix": "pkg_$PACKAGE"}}

	tests := []struct {
		name   string
		ann    string
		pkg    *PackageConfig
		plugin string
		cmd    string
		want   string
	}{
		{name: "注解优先", ann: "// @Mix(output=`$FILE_x`)", pkg: pkg, plugin: "mix", cmd: "cmd", want: "/src/model/person_x.go"},
		{name: "包级插件配置", ann: "// @Mix", pkg: pkg, plugin: "mix", cmd: "cmd", want: "/src/model/pkg_model.go"},
		{name: "包级默认配置", ann: "// @Mix", pkg: pkg, plugin: "other", cmd: "cmd", want: "/src/model/pkg_default.go"},
		{name: "命令行", ann: "// @Mix", plugin: "mix", cmd: "$TYPE_cmd", want: "/src/model/Person_cmd.go"},
		{name: "默认文件名", ann: "// @Mix", plugin: "mix", want: "/src/model/person_mix.go"},
		{name: "绝对路径", ann: "// @Mix(output=`/tmp/out.go`)", plugin: "mix", want: "/tmp/out.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann := ParseAnnotations(tt.ann)[0]
			got := GetOutputPath(target, ann, "$FILE_mix.go", tt.pkg, tt.plugin, tt.cmd)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunAndCheck(t *testing.T) {
	var logs bytes.Buffer
	prev := SetOutput(&logs)
	t.Cleanup(func() { SetOutput(prev) })

	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "model.go"), `package test

// @Mix
type User struct {
	ID uint
}

// @Mix
type Order struct {
	ID uint
}
`)

	registry := NewRegistry()
	registry.MustRegister(newTestGenerator("mix", "Mix"))

	stats, err := RunWithOptions(context.Background(), &RunOptions{Registry: registry, Patterns: []string{tmpDir}, Async: true})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TargetCount)
	assert.Equal(t, 2, stats.FileCount)

	userFile := filepath.Join(tmpDir, "user_describe.go")
	content, err := os.ReadFile(userFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "// "+GeneratedHeader+"\n\npackage test\n"), "头部注释后应有空行:\n%s", content)
	assert.Contains(t, string(content), "func DescribeUser() string")
	assert.NotContains(t, string(content), "================", "single generator has no separator")
	assert.Contains(t, logs.String(), "[strunemix] 生成文件: "+userFile)

	stats, err = RunWithOptions(context.Background(), &RunOptions{Registry: registry, Patterns: []string{tmpDir}, Check: true})
	require.NoError(t, err)
	assert.Empty(t, stats.StaleFiles)

	writeTestFile(t, userFile, "package test\n")
	logs.Reset()
	stats, err = RunWithOptions(context.Background(), &RunOptions{Registry: registry, Patterns: []string{tmpDir}, Check: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStale))
	assert.Equal(t, []string{userFile}, stats.StaleFiles)
	assert.Contains(t, logs.String(), "--- "+userFile)
	assert.Contains(t, logs.String(), "+func DescribeUser() string {")

	content, err = os.ReadFile(userFile)
	require.NoError(t, err)
	assert.Equal(t, "package test\n", string(content), "check mode must not write")
}

func TestRun_BadParamsAreReported(t *testing.T) {
	var logs bytes.Buffer
	prev := SetOutput(&logs)
	t.Cleanup(func() { SetOutput(prev) })

	type params struct {
		Label string `param:"name=label,required=false,default=source,enum=source|snake,description=style"`
	}
	gen := &testGenerator{BaseGenerator: *NewBaseGeneratorWithParamsStruct("mix", []string{"Mix"}, []TargetKind{TargetStruct}, params{})}
	registry := NewRegistry()
	registry.MustRegister(gen)

	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "model.go"), "package test\n\n// @Mix(label=kebab)\ntype User struct{}\n\n// @Mix(label=snake)\ntype Order struct{}\n")

	stats, err := RunWithOptions(context.Background(), &RunOptions{Registry: registry, Patterns: []string{tmpDir}})
	require.Error(t, err)
	assert.Equal(t, 1, stats.FileCount, "valid targets are still generated")
	assert.Contains(t, logs.String(), `label="kebab" 无效`)

	_, statErr := os.Stat(filepath.Join(tmpDir, "order_describe.go"))
	assert.NoError(t, statErr)
}

func TestMergeDefinitions(t *testing.T) {
	a := gg.New()
	a.SetPackage("model")
	a.Body().AddString("var A = 1")
	b := gg.New()
	b.SetPackage("model")
	b.Body().AddString("var B = 2")

	merged, err := mergeDefinitions([]*gg.Generator{a, b}, []string{"first", "second"})
	require.NoError(t, err)
	out := merged.String()
	assert.Contains(t, out, "// ================ first ================")
	assert.Contains(t, out, "// ================ second ================")
	assert.Less(t, strings.Index(out, "var A"), strings.Index(out, "var B"))

	c := gg.New()
	c.SetPackage("other")
	_, err = mergeDefinitions([]*gg.Generator{a, c}, []string{"a", "c"})
	assert.Error(t, err)

	_, err = mergeDefinitions(nil, nil)
	assert.Error(t, err)
}

func TestParallelKeepsOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1, 0}
	got := parallel(context.Background(), 3, items, func(n int) int { return n * n })
	assert.Equal(t, []int{25, 16, 9, 4, 1, 0}, got)
	assert.Empty(t, parallel(context.Background(), 3, []int{}, func(n int) int { return n }))
}
