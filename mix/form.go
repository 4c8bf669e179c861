package mix

import (
	"fmt"
	"iter"
)

// Entry Form 中单个字段的槽位
type Entry[D any, M any] struct {
	Data D    // 字段值，Set 为 false 时无意义
	Set  bool // 是否已填写
	Meta M    // 附加信息
}

// Form 以字段名为键、按声明顺序保存字段值与附加信息的容器
//
// 键集合在构造时确定，此后只会修改槽位内容，不会增删键。
// 因此以 Name 为键的访问器不会失败，键缺失属于内部错误并 panic；
// ByLabel 访问器以字符串为键，字符串不是字段名时返回 *NotAnEnumNameError。
//
// Form 不是并发安全的。
type Form[N Name, D Data[N], M any] struct {
	slots *slotMap[N, Entry[D, M]]
}

// NewForm 创建所有槽位都未填写的 Form，names 的顺序即声明顺序
func NewForm[N Name, D Data[N], M any](names []N) *Form[N, D, M] {
	slots := newSlotMap[N, Entry[D, M]](len(names))
	for _, n := range names {
		if !slots.insert(n, Entry[D, M]{Meta: DefaultOf[M]()}) {
			panic(fmt.Sprintf("mix: duplicate name %s.%s", n.EnumName(), n.Label()))
		}
	}
	return &Form[N, D, M]{slots: slots}
}

// FormOf 创建所有槽位都已填写的 Form
// data 必须与 names 一一对应，否则返回 *WrongOrderError
func FormOf[N Name, D Data[N], M any](names []N, data []D) (*Form[N, D, M], error) {
	if len(names) != len(data) {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrWrongOrder, len(names), len(data))
	}
	f := NewForm[N, D, M](names)
	for i, d := range data {
		if got, ok := NameOf[N](d); !ok || got != names[i] {
			return nil, WrongOrder[N](i, names[i], d)
		}
		e := &f.slots.values[i]
		e.Data, e.Set = d, true
	}
	return f, nil
}

// MustFormOf 同 FormOf，出错时 panic
func MustFormOf[N Name, D Data[N], M any](names []N, data []D) *Form[N, D, M] {
	f, err := FormOf[N, D, M](names, data)
	if err != nil {
		panic(err)
	}
	return f
}

// entry 键缺失说明 Form 的键集合被破坏，属于不可恢复的内部错误
func (f *Form[N, D, M]) entry(name N) *Entry[D, M] {
	e := f.slots.ptr(name)
	if e == nil {
		panic(fmt.Sprintf("mix: internal invariant violated, %s.%s is not a key of the form", name.EnumName(), name.Label()))
	}
	return e
}

// lookup 按字符串查找字段名
func (f *Form[N, D, M]) lookup(label string) (N, error) {
	return ParseName(f.slots.keys, label)
}

// Data 返回字段值，未填写时 ok 为 false
func (f *Form[N, D, M]) Data(name N) (d D, ok bool) {
	e := f.entry(name)
	if !e.Set {
		return d, false
	}
	return e.Data, true
}

// MutData 返回字段值的指针，未填写时返回 nil
func (f *Form[N, D, M]) MutData(name N) *D {
	e := f.entry(name)
	if !e.Set {
		return nil
	}
	return &e.Data
}

// Meta 返回字段的附加信息
func (f *Form[N, D, M]) Meta(name N) M {
	return f.entry(name).Meta
}

// MutMeta 返回字段附加信息的指针
func (f *Form[N, D, M]) MutMeta(name N) *M {
	return &f.entry(name).Meta
}

// SetMeta 覆盖字段的附加信息
func (f *Form[N, D, M]) SetMeta(name N, meta M) {
	f.entry(name).Meta = meta
}

// SetData 覆盖字段值，不影响附加信息
// d 的字段名必须与 name 一致，否则返回 *WrongOrderError 且槽位不变
func (f *Form[N, D, M]) SetData(name N, d D) error {
	e := f.entry(name)
	if got, ok := NameOf[N](d); !ok || got != name {
		return WrongOrder[N](f.slots.index(name), name, d)
	}
	e.Data, e.Set = d, true
	return nil
}

// Put 以 d 自身的字段名为键写入，d 不能为 nil
func (f *Form[N, D, M]) Put(d D) {
	e := f.entry(d.AttrName())
	e.Data, e.Set = d, true
}

// SetDataFromString 用 parse 解析 text 并写入
// 解析失败时返回 *ParseError，槽位保持不变
func (f *Form[N, D, M]) SetDataFromString(name N, text string, parse ParseFunc[N, D]) error {
	d, err := parseField(name, text, parse)
	if err != nil {
		return err
	}
	return f.SetData(name, d)
}

// RemoveData 清空字段值，不影响附加信息
func (f *Form[N, D, M]) RemoveData(name N) {
	e := f.entry(name)
	var zero D
	e.Data, e.Set = zero, false
}

// DataByLabel 同 Data，以字符串为键
func (f *Form[N, D, M]) DataByLabel(label string) (d D, ok bool, err error) {
	name, err := f.lookup(label)
	if err != nil {
		return d, false, err
	}
	d, ok = f.Data(name)
	return d, ok, nil
}

// MutDataByLabel 同 MutData，以字符串为键
func (f *Form[N, D, M]) MutDataByLabel(label string) (*D, error) {
	name, err := f.lookup(label)
	if err != nil {
		return nil, err
	}
	return f.MutData(name), nil
}

// MetaByLabel 同 Meta，以字符串为键
func (f *Form[N, D, M]) MetaByLabel(label string) (m M, err error) {
	name, err := f.lookup(label)
	if err != nil {
		return m, err
	}
	return f.Meta(name), nil
}

// MutMetaByLabel 同 MutMeta，以字符串为键
func (f *Form[N, D, M]) MutMetaByLabel(label string) (*M, error) {
	name, err := f.lookup(label)
	if err != nil {
		return nil, err
	}
	return f.MutMeta(name), nil
}

// SetMetaByLabel 同 SetMeta，以字符串为键
func (f *Form[N, D, M]) SetMetaByLabel(label string, meta M) error {
	name, err := f.lookup(label)
	if err != nil {
		return err
	}
	f.SetMeta(name, meta)
	return nil
}

// SetDataByLabel 同 SetData，以字符串为键
func (f *Form[N, D, M]) SetDataByLabel(label string, d D) error {
	name, err := f.lookup(label)
	if err != nil {
		return err
	}
	return f.SetData(name, d)
}

// SetDataFromStringByLabel 同 SetDataFromString，以字符串为键
func (f *Form[N, D, M]) SetDataFromStringByLabel(label, text string, parse ParseFunc[N, D]) error {
	name, err := f.lookup(label)
	if err != nil {
		return err
	}
	return f.SetDataFromString(name, text, parse)
}

// RemoveDataByLabel 同 RemoveData，以字符串为键
func (f *Form[N, D, M]) RemoveDataByLabel(label string) error {
	name, err := f.lookup(label)
	if err != nil {
		return err
	}
	f.RemoveData(name)
	return nil
}

// IsComplete 所有槽位都已填写时返回 true
func (f *Form[N, D, M]) IsComplete() bool {
	for _, e := range f.slots.values {
		if !e.Set {
			return false
		}
	}
	return true
}

// Missing 按声明顺序返回未填写的字段名
func (f *Form[N, D, M]) Missing() []N {
	var missing []N
	for i, e := range f.slots.values {
		if !e.Set {
			missing = append(missing, f.slots.keys[i])
		}
	}
	return missing
}

// ToDataSlice 按声明顺序返回所有字段值
// 有未填写的槽位时返回 ErrIncompleteForm
func (f *Form[N, D, M]) ToDataSlice() ([]D, error) {
	if missing := f.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrIncompleteForm, Labels(missing))
	}
	out := make([]D, len(f.slots.values))
	for i, e := range f.slots.values {
		out[i] = e.Data
	}
	return out, nil
}

// MetaSlice 按声明顺序返回所有附加信息
func (f *Form[N, D, M]) MetaSlice() []M {
	out := make([]M, len(f.slots.values))
	for i, e := range f.slots.values {
		out[i] = e.Meta
	}
	return out
}

// Names 按声明顺序返回所有字段名
func (f *Form[N, D, M]) Names() []N {
	return append([]N(nil), f.slots.keys...)
}

// Len 返回字段数量
func (f *Form[N, D, M]) Len() int {
	return f.slots.len()
}

// All 按声明顺序遍历所有槽位
func (f *Form[N, D, M]) All() iter.Seq2[N, Entry[D, M]] {
	return func(yield func(N, Entry[D, M]) bool) {
		for i, k := range f.slots.keys {
			if !yield(k, f.slots.values[i]) {
				return
			}
		}
	}
}

// Clone 浅拷贝，字段值与附加信息按值复制
func (f *Form[N, D, M]) Clone() *Form[N, D, M] {
	return &Form[N, D, M]{slots: f.slots.clone()}
}
