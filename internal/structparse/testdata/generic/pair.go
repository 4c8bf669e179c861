package generic

// Pair 泛型结构体
type Pair[K comparable, V any] struct {
	Key   K
	Value V
	Next  *Pair[K, V]
}

func (p Pair[K, V]) Swap() Pair[K, V] {
	return Pair[K, V]{Key: p.Key, Value: p.Value}
}
