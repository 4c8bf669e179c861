package mix

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongOrder 重建结构体时数组元素与声明顺序不符
	ErrWrongOrder = errors.New("invalid input data, wrong order of data")

	// ErrIncompleteForm Form 中仍有未填写的字段
	ErrIncompleteForm = errors.New("incomplete form")
)

// NotAnEnumNameError 字符串不是枚举中的字段名
type NotAnEnumNameError struct {
	Value string // 出错的字符串
	Enum  string // 枚举类型名
}

func (e *NotAnEnumNameError) Error() string {
	return fmt.Sprintf("the string %q is not a valid name for the enum %s", e.Value, e.Enum)
}

// NotAnEnumName 创建 *NotAnEnumNameError
func NotAnEnumName(value, enum string) error {
	return &NotAnEnumNameError{Value: value, Enum: enum}
}

// WrongOrderError 指明重建时第几个元素的变体不符
type WrongOrderError struct {
	Index int    // 数组位置
	Want  string // 期望的字段名
	Got   string // 实际的字段名，nil 元素为 "<nil>"
}

func (e *WrongOrderError) Error() string {
	return fmt.Sprintf("%s: index %d want %q, got %q", ErrWrongOrder, e.Index, e.Want, e.Got)
}

func (e *WrongOrderError) Is(target error) bool {
	return target == ErrWrongOrder
}

// WrongOrder 创建 *WrongOrderError，got 可以为 nil
func WrongOrder[N Name](index int, want N, got Data[N]) error {
	gotLabel := "<nil>"
	if got != nil {
		gotLabel = got.AttrName().Label()
	}
	return &WrongOrderError{Index: index, Want: want.Label(), Got: gotLabel}
}

// ParseKind 字符串解析失败的类别
type ParseKind int

const (
	KindOther ParseKind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindString
)

func (k ParseKind) String() string {
	switch k {
	case KindInt:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindString:
		return "String"
	default:
		return "data"
	}
}

// ParseError 字段字符串解析失败
type ParseError struct {
	Field string    // 字段标签，未知时为空
	Kind  ParseKind // 失败类别
	Text  string    // 原始输入
	Err   error     // 底层错误
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.Text, e.Err)
	}
	return fmt.Sprintf("field %s: invalid %s %q: %v", e.Field, e.Kind, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// wrapParseError 为 err 补充字段信息，非 *ParseError 的错误归为 KindOther
func wrapParseError(field, text string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Field != "" {
			return err
		}
		cp := *pe
		cp.Field = field
		return &cp
	}
	return &ParseError{Field: field, Kind: KindOther, Text: text, Err: err}
}
