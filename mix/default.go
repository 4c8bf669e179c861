package mix

// NoMeta 空元信息，不需要为字段附加信息时使用
type NoMeta = struct{}

// DefaultProvider 提供类型的默认值
// 值接收者或指针接收者均可
type DefaultProvider[T any] interface {
	Default() T
}

// DefaultOf 返回 T 的默认值
// T 或 *T 实现了 DefaultProvider[T] 时调用 Default()，否则返回零值
func DefaultOf[T any]() T {
	var zero T
	if p, ok := any(zero).(DefaultProvider[T]); ok {
		return p.Default()
	}
	if p, ok := any(&zero).(DefaultProvider[T]); ok {
		return p.Default()
	}
	return zero
}
