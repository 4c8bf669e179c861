package plugin

import (
	"regexp"
	"slices"
	"strings"
)

// annotationRegex 匹配 @Name 或 @Name(params)
var annotationRegex = regexp.MustCompile(`@(\w+)(?:\(([^)]*)\))?`)

// paramRegex 匹配参数:
//   - key=`value`
//   - key="value"
//   - key=value
var paramRegex = regexp.MustCompile("(\\w+)\\s*=\\s*`([^`]*)`|(\\w+)\\s*=\\s*\"([^\"]*)\"|(\\w+)\\s*=\\s*([^,\\s]+)")

// ParseAnnotations 从注释文本中解析所有注解
func ParseAnnotations(comment string) []*Annotation {
	var annotations []*Annotation
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)

		for _, match := range annotationRegex.FindAllStringSubmatch(line, -1) {
			annotations = append(annotations, &Annotation{
				Name:   match[1],
				Params: parseParams(match[2]),
				Raw:    match[0],
			})
		}
	}
	return annotations
}

// parseParams 解析注解参数，key 统一转为小写
func parseParams(content string) map[string]string {
	params := make(map[string]string)
	for _, match := range paramRegex.FindAllStringSubmatch(content, -1) {
		for i := 1; i+1 < len(match); i += 2 {
			if match[i] != "" {
				params[strings.ToLower(match[i])] = match[i+1]
				break
			}
		}
	}
	return params
}

// FilterByNames 过滤指定名称的注解，names 为空时原样返回
func FilterByNames(annotations []*Annotation, names ...string) []*Annotation {
	if len(names) == 0 {
		return annotations
	}
	var result []*Annotation
	for _, ann := range annotations {
		if slices.Contains(names, ann.Name) {
			result = append(result, ann)
		}
	}
	return result
}

// HasAnnotation 检查是否包含指定注解
func HasAnnotation(annotations []*Annotation, name string) bool {
	return GetAnnotation(annotations, name) != nil
}

// GetAnnotation 获取第一个指定名称的注解
func GetAnnotation(annotations []*Annotation, name string) *Annotation {
	for _, ann := range annotations {
		if ann.Name == name {
			return ann
		}
	}
	return nil
}

// GetParam 获取注解参数
func (a *Annotation) GetParam(key string) string {
	return a.Params[strings.ToLower(key)]
}

// GetParamOr 获取注解参数，不存在时返回默认值
func (a *Annotation) GetParamOr(key, defaultValue string) string {
	if v, ok := a.Params[strings.ToLower(key)]; ok {
		return v
	}
	return defaultValue
}

// HasParam 检查是否有指定参数
func (a *Annotation) HasParam(key string) bool {
	_, ok := a.Params[strings.ToLower(key)]
	return ok
}

// ParamKeys 返回排序后的参数名
func (a *Annotation) ParamKeys() []string {
	keys := make([]string, 0, len(a.Params))
	for k := range a.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
