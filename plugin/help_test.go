package plugin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpText(t *testing.T) {
	registry := NewRegistry()
	gen := &testGenerator{BaseGenerator: *NewBaseGeneratorWithParamsStruct("mix", []string{"Mix"}, []TargetKind{TargetStruct}, sampleParams{})}
	registry.MustRegister(gen)

	helpText := FormatHelpText(registry)

	for _, expected := range []string{
		"@Mix - mix",
		"output - 输出文件路径",
		"label [默认: source] {source|snake} - 标签风格",
		"key (必填) - 必填",
		"示例:",
		"@Mix(output=$FILE_fields.go)",
		"@Mix(label=snake)",
		"@Mix(depth=2)",
	} {
		if !strings.Contains(helpText, expected) {
			t.Errorf("help text should contain %q, got:\n%s", expected, helpText)
		}
	}
}

func TestFormatHelpText_MultipleGenerators(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(newTestGenerator("beta", "Beta"))
	registry.MustRegister(newTestGenerator("alpha", "Alpha"))

	helpText := FormatHelpText(registry)
	assert.Less(t, strings.Index(helpText, "@Alpha"), strings.Index(helpText, "@Beta"))
}

func TestFormatHelpText_EmptyRegistry(t *testing.T) {
	assert.Equal(t, "  (暂无已注册的生成器)\n", FormatHelpText(NewRegistry()))
}

func TestFormatParamDef(t *testing.T) {
	tests := []struct {
		param ParamDef
		want  string
	}{
		{ParamDef{Name: "a"}, "a"},
		{ParamDef{Name: "a", Required: true, Description: "desc"}, "a (必填) - desc"},
		{ParamDef{Name: "a", Default: "x", Enum: []string{"x", "y"}}, "a [默认: x] {x|y}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatParamDef(tt.param))
	}
}
