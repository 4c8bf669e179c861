package mix

import "fmt"

// Data 是生成的字段值枚举需要实现的接口
type Data[N Name] interface {
	// AttrName 返回该值对应的字段名枚举
	AttrName() N

	// AttrValue 返回该值携带的字段值
	AttrValue() any
}

// ParseFunc 根据字段名将字符串解析为字段值
// 由使用方提供（或由 parse=auto 生成），Form 只负责分发
type ParseFunc[N Name, D Data[N]] func(name N, text string) (D, error)

// NameOf 返回 d 对应的字段名，d 为 nil 时 ok 为 false
func NameOf[N Name, D Data[N]](d D) (name N, ok bool) {
	if any(d) == nil {
		return name, false
	}
	return d.AttrName(), true
}

// FormatData 以 label(value) 的形式格式化字段值
func FormatData[N Name](d Data[N]) string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%v)", d.AttrName().Label(), d.AttrValue())
}

// FromLabel 先将 label 解析为字段名，再用 parse 解析 text
func FromLabel[N Name, D Data[N]](names []N, label, text string, parse ParseFunc[N, D]) (D, error) {
	name, err := ParseName(names, label)
	if err != nil {
		var zero D
		return zero, err
	}
	return parseField(name, text, parse)
}

// parseField 调用 parse 并将错误统一为 *ParseError
func parseField[N Name, D Data[N]](name N, text string, parse ParseFunc[N, D]) (D, error) {
	d, err := parse(name, text)
	if err != nil {
		var zero D
		return zero, wrapParseError(name.Label(), text, err)
	}
	return d, nil
}
