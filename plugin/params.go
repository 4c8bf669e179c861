package plugin

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// OutputParam 所有生成器共有的输出路径参数，不需要在参数结构体中声明
const OutputParam = "output"

// ParseParamsFromStruct 从结构体的 param tag 解析参数定义
// 支持的 key: name, required, default, description, enum（以 | 分隔）
//
//	type Params struct {
//	    Label string `param:"name=label,required=false,default=source,enum=source|snake,description=字段标签风格"`
//	}
func ParseParamsFromStruct(v any) []ParamDef {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return nil
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var params []ParamDef
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("param")
		if tag == "" {
			continue
		}
		if def := parseParamTag(tag); def.Name != "" {
			params = append(params, def)
		}
	}
	return params
}

// parseParamTag 解析 name=xxx,required=true,default=xxx,description=xxx
func parseParamTag(tag string) ParamDef {
	var param ParamDef
	for key, value := range splitTag(tag) {
		switch key {
		case "name":
			param.Name = value
		case "required":
			param.Required = cast.ToBool(value)
		case "default":
			param.Default = value
		case "description":
			param.Description = value
		case "enum":
			if value != "" {
				param.Enum = strings.Split(value, "|")
			}
		}
	}
	return param
}

// splitTag 将 key1=value1,key2=value2 分割为键值对，\ 转义下一个字符
func splitTag(tag string) map[string]string {
	result := make(map[string]string)

	var key, value strings.Builder
	current := &key
	flush := func() {
		if key.Len() > 0 {
			result[key.String()] = value.String()
		}
		key.Reset()
		value.Reset()
		current = &key
	}

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		switch {
		case ch == '\\' && i+1 < len(tag):
			i++
			current.WriteByte(tag[i])
		case ch == '=' && current == &key:
			current = &value
		case ch == ',':
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	flush()
	return result
}

// ParseAnnotationParams 将注解参数解析到目标结构体（必须是指针）
// 未声明的参数、必填参数缺失、不在可选值内的参数都会返回错误
func ParseAnnotationParams(annotation *Annotation, target any, paramDefs []ParamDef) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("参数目标必须是非 nil 指针, 得到: %T", target)
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("参数目标必须指向结构体, 得到: %T", target)
	}

	defs := make(map[string]ParamDef, len(paramDefs))
	for _, def := range paramDefs {
		defs[def.Name] = def
	}
	for _, key := range annotation.ParamKeys() {
		if _, ok := defs[key]; !ok && key != OutputParam {
			return fmt.Errorf("@%s 不支持参数 %q", annotation.Name, key)
		}
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		fieldVal := val.Field(i)
		if !fieldVal.CanSet() {
			continue
		}
		tag := typ.Field(i).Tag.Get("param")
		if tag == "" {
			continue
		}
		name := parseParamTag(tag).Name
		if name == "" {
			continue
		}
		def := defs[name]

		value, ok := annotation.Params[name]
		if !ok || value == "" {
			if def.Required {
				return fmt.Errorf("@%s 缺少必填参数 %s", annotation.Name, name)
			}
			value = def.Default
		}
		if len(def.Enum) > 0 && value != "" && !slices.Contains(def.Enum, value) {
			return fmt.Errorf("@%s 参数 %s=%q 无效, 可选值: %s", annotation.Name, name, value, strings.Join(def.Enum, ", "))
		}
		if err := setFieldValue(fieldVal, value); err != nil {
			return fmt.Errorf("@%s 参数 %s: %w", annotation.Name, name, err)
		}
	}
	return nil
}

// setFieldValue 支持 string、int、uint、bool、float 字段
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := cast.ToInt64E(orZero(value))
		if err != nil {
			return err
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := cast.ToUint64E(orZero(value))
		if err != nil {
			return err
		}
		field.SetUint(v)
	case reflect.Bool:
		if value == "" {
			field.SetBool(false)
			return nil
		}
		v, err := cast.ToBoolE(value)
		if err != nil {
			return err
		}
		field.SetBool(v)
	case reflect.Float32, reflect.Float64:
		v, err := cast.ToFloat64E(orZero(value))
		if err != nil {
			return err
		}
		field.SetFloat(v)
	default:
		return fmt.Errorf("不支持的参数类型 %s", field.Type())
	}
	return nil
}

func orZero(value string) string {
	if value == "" {
		return "0"
	}
	return value
}
