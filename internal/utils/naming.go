package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// commonInitialisms 常见首字母缩略词，与 GORM 保持一致
var commonInitialisms = []string{
	"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS",
	"ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP",
	"SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM",
	"XML", "XSRF", "XSS",
}

// initialismReplacer API -> Api, HTTP -> Http
var initialismReplacer = func() *strings.Replacer {
	args := make([]string, 0, len(commonInitialisms)*2)
	for _, word := range commonInitialisms {
		args = append(args, word, word[:1]+strings.ToLower(word[1:]))
	}
	return strings.NewReplacer(args...)
}()

// UpperCamelCase 将字段名转换为大驼峰，用作生成的常量与变体名
// phone_number -> PhoneNumber, firstName -> FirstName, ID -> ID
func UpperCamelCase(name string) string {
	var buf strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		buf.WriteRune(unicode.ToUpper(r))
		buf.WriteString(part[size:])
	}
	return buf.String()
}

// ToSnakeCase 将驼峰命名转换为蛇形命名，规则与 GORM 的 toDBName 一致
// 参考: gorm/schema/naming.go
func ToSnakeCase(name string) string {
	if name == "" {
		return ""
	}
	value := initialismReplacer.Replace(name)

	isUpper := func(b byte) bool { return b >= 'A' && b <= 'Z' }
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }

	var (
		buf              strings.Builder
		prevUpper, upper = false, isUpper(value[0])
		last             = len(value) - 1
	)
	for i := 0; i < last; i++ {
		c := value[i]
		nextUpper := isUpper(value[i+1])
		if upper {
			run := prevUpper && (nextUpper || isDigit(value[i+1]))
			if !run && i > 0 && value[i-1] != '_' && value[i+1] != '_' {
				buf.WriteByte('_')
			}
			buf.WriteByte(c + 32)
		} else {
			buf.WriteByte(c)
		}
		prevUpper, upper = upper, nextUpper
	}

	if upper {
		if !prevUpper && last > 0 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[last] + 32)
	} else {
		buf.WriteByte(value[last])
	}
	return buf.String()
}
