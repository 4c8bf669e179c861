package mix

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
	"golang.org/x/exp/constraints"
)

var (
	errEmpty   = errors.New("empty string")
	errDecimal = errors.New("invalid digit found in string")
)

// decimalText 只接受可选符号加十进制数字，并去掉前导零
// cast 会按 0x/0b/0 前缀推断进制，这里先规范成十进制文本再交给它
func decimalText(text string, signed bool) (string, error) {
	sign, digits := "", text
	switch {
	case digits[0] == '+':
		digits = digits[1:]
	case digits[0] == '-' && signed:
		sign, digits = "-", digits[1:]
	}
	if digits == "" {
		return "", errDecimal
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", errDecimal
		}
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0", nil
	}
	return sign + digits, nil
}

// ParseInt 将字符串解析为有符号整数，超出 T 的范围视为失败
func ParseInt[T constraints.Signed](text string) (T, error) {
	if text == "" {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: errEmpty}
	}
	dec, err := decimalText(text, true)
	if err != nil {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: err}
	}
	v, err := cast.ToInt64E(dec)
	if err != nil {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: err}
	}
	if int64(T(v)) != v {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: errors.New("value out of range")}
	}
	return T(v), nil
}

// ParseUint 将字符串解析为无符号整数，超出 T 的范围视为失败
func ParseUint[T constraints.Unsigned](text string) (T, error) {
	if text == "" {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: errEmpty}
	}
	dec, err := decimalText(text, false)
	if err != nil {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: err}
	}
	v, err := cast.ToUint64E(dec)
	if err != nil {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: err}
	}
	if uint64(T(v)) != v {
		return 0, &ParseError{Kind: KindInt, Text: text, Err: errors.New("value out of range")}
	}
	return T(v), nil
}

// ParseFloat 将字符串解析为浮点数
func ParseFloat[T constraints.Float](text string) (T, error) {
	if text == "" {
		return 0, &ParseError{Kind: KindFloat, Text: text, Err: errEmpty}
	}
	v, err := cast.ToFloat64E(text)
	if err != nil {
		return 0, &ParseError{Kind: KindFloat, Text: text, Err: err}
	}
	if !math.IsInf(v, 0) && math.IsInf(float64(T(v)), 0) {
		return 0, &ParseError{Kind: KindFloat, Text: text, Err: errors.New("value out of range")}
	}
	return T(v), nil
}

// ParseBool 只接受 true 和 false
func ParseBool(text string) (bool, error) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "":
		return false, &ParseError{Kind: KindBool, Text: text, Err: errEmpty}
	}
	return false, &ParseError{Kind: KindBool, Text: text, Err: errors.New("provided string was not `true` or `false`")}
}

// ParseChar 字符串必须恰好包含一个字符
func ParseChar(text string) (rune, error) {
	if utf8.RuneCountInString(text) != 1 {
		return 0, &ParseError{Kind: KindChar, Text: text, Err: errors.New("must contain exactly one character")}
	}
	r, _ := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return 0, &ParseError{Kind: KindChar, Text: text, Err: errors.New("invalid utf-8")}
	}
	return r, nil
}

// ParseString 原样返回，仅拒绝非法 UTF-8
func ParseString(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", &ParseError{Kind: KindString, Text: text, Err: errors.New("invalid utf-8")}
	}
	return text, nil
}
