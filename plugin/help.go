package plugin

import (
	"fmt"
	"strings"
)

// FormatHelpText 为所有注册的生成器生成帮助文本
func FormatHelpText(registry *Registry) string {
	generators := registry.Generators()
	if len(generators) == 0 {
		return "  (暂无已注册的生成器)\n"
	}

	var sb strings.Builder
	for _, gen := range generators {
		annotations := gen.Annotations()
		if len(annotations) == 0 {
			continue
		}
		main := annotations[0]

		fmt.Fprintf(&sb, "  @%s - %s\n", main, gen.Name())
		sb.WriteString("    参数:\n")
		sb.WriteString("      output - 输出文件路径（支持 $FILE、$PACKAGE、$TYPE）\n")
		for _, param := range gen.ParamDefs() {
			fmt.Fprintf(&sb, "      %s\n", FormatParamDef(param))
		}

		sb.WriteString("    示例:\n")
		fmt.Fprintf(&sb, "      @%s\n", main)
		fmt.Fprintf(&sb, "      @%s(output=$FILE_fields.go)\n", main)
		shown := 0
		for _, param := range gen.ParamDefs() {
			if shown == 2 {
				break
			}
			example := param.Default
			if len(param.Enum) > 0 {
				example = param.Enum[len(param.Enum)-1]
			}
			if example == "" {
				continue
			}
			fmt.Fprintf(&sb, "      @%s(%s=%s)\n", main, param.Name, example)
			shown++
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatParamDef 格式化单个参数定义
//
//	label [默认: source] {source|snake} - 字段标签风格
func FormatParamDef(param ParamDef) string {
	var sb strings.Builder
	sb.WriteString(param.Name)
	if param.Required {
		sb.WriteString(" (必填)")
	}
	if param.Default != "" {
		fmt.Fprintf(&sb, " [默认: %s]", param.Default)
	}
	if len(param.Enum) > 0 {
		fmt.Fprintf(&sb, " {%s}", strings.Join(param.Enum, "|"))
	}
	if param.Description != "" {
		sb.WriteString(" - ")
		sb.WriteString(param.Description)
	}
	return sb.String()
}
