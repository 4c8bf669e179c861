package mix

// Name 是生成的字段名枚举需要实现的约束
type Name interface {
	comparable

	// Label 返回字段的规范字符串名
	Label() string

	// EnumName 返回枚举类型名，用于错误信息
	EnumName() string
}

// ParseName 在 names 中线性查找标签为 label 的枚举值
func ParseName[N Name](names []N, label string) (N, error) {
	for _, n := range names {
		if n.Label() == label {
			return n, nil
		}
	}
	var zero N
	return zero, NotAnEnumName(label, zero.EnumName())
}

// Labels 按顺序返回所有枚举值的标签
func Labels[N Name](names []N) []string {
	labels := make([]string, len(names))
	for i, n := range names {
		labels[i] = n.Label()
	}
	return labels
}
