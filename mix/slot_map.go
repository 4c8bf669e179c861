package mix

// slotMap 键集合固定、按插入顺序遍历的小型 Map
// 字段数量很少，线性查找即可，不需要哈希
type slotMap[K comparable, V any] struct {
	keys   []K
	values []V
}

func newSlotMap[K comparable, V any](capacity int) *slotMap[K, V] {
	return &slotMap[K, V]{
		keys:   make([]K, 0, capacity),
		values: make([]V, 0, capacity),
	}
}

// index 返回 key 的位置，不存在时返回 -1
func (m *slotMap[K, V]) index(key K) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// insert 追加新键，键已存在时返回 false
func (m *slotMap[K, V]) insert(key K, value V) bool {
	if m.index(key) >= 0 {
		return false
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
	return true
}

// ptr 返回 key 对应值的指针，不存在时返回 nil
func (m *slotMap[K, V]) ptr(key K) *V {
	if i := m.index(key); i >= 0 {
		return &m.values[i]
	}
	return nil
}

func (m *slotMap[K, V]) len() int {
	return len(m.keys)
}

func (m *slotMap[K, V]) clone() *slotMap[K, V] {
	return &slotMap[K, V]{
		keys:   append([]K(nil), m.keys...),
		values: append([]V(nil), m.values...),
	}
}
