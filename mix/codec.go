package mix

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// MarshalLabel 将字段名编码为 JSON 字符串
func MarshalLabel[N Name](name N) ([]byte, error) {
	return sonic.Marshal(name.Label())
}

// UnmarshalLabel 从 JSON 字符串解码字段名
func UnmarshalLabel[N Name](names []N, b []byte) (N, error) {
	var label string
	if err := sonic.Unmarshal(b, &label); err != nil {
		var zero N
		return zero, err
	}
	return ParseName(names, label)
}

// MarshalData 将字段值编码为 {"label": value}
func MarshalData[N Name](d Data[N]) ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	if err := writeMember(&buf, d.AttrName().Label(), d.AttrValue()); err != nil {
		return nil, err
	}
	return append(append([]byte{'{'}, buf.Bytes()...), '}'), nil
}

// SplitData 拆分 {"label": value}，返回标签与未解码的值
func SplitData(b []byte) (string, []byte, error) {
	var obj map[string]json.RawMessage
	if err := sonic.Unmarshal(b, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("mix: expected an object with exactly one field, got %d", len(obj))
	}
	var label string
	var raw []byte
	for k, v := range obj {
		label, raw = k, v
	}
	return label, raw, nil
}

// DecodeValue 解码 SplitData 返回的值
func DecodeValue[T any](raw []byte) (T, error) {
	var v T
	err := sonic.Unmarshal(raw, &v)
	return v, err
}

// MarshalJSON 按声明顺序编码已填写的槽位
func (f *Form[N, D, M]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for i, e := range f.slots.values {
		if !e.Set {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeMember(&buf, f.slots.keys[i].Label(), e.Data.AttrValue()); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Fill 解码 {"label": value, ...} 并逐个写入，decode 负责把单个成员转为字段值
// 未出现的字段保持原状
func (f *Form[N, D, M]) Fill(b []byte, decode func(name N, raw []byte) (D, error)) error {
	var obj map[string]json.RawMessage
	if err := sonic.Unmarshal(b, &obj); err != nil {
		return err
	}
	// 先全部解码，任一失败则不修改 Form
	staged := make([]D, 0, len(obj))
	for _, name := range f.slots.keys {
		raw, ok := obj[name.Label()]
		if !ok {
			continue
		}
		delete(obj, name.Label())
		d, err := decode(name, raw)
		if err != nil {
			return wrapParseError(name.Label(), string(raw), err)
		}
		if got, ok := NameOf[N](d); !ok || got != name {
			return WrongOrder[N](f.slots.index(name), name, d)
		}
		staged = append(staged, d)
	}
	for label := range obj {
		var zero N
		return NotAnEnumName(label, zero.EnumName())
	}
	for _, d := range staged {
		f.Put(d)
	}
	return nil
}

func writeMember(buf *bytes.Buffer, label string, value any) error {
	k, err := sonic.Marshal(label)
	if err != nil {
		return err
	}
	v, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("mix: encode %s: %w", label, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
