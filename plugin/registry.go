package plugin

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Registry 注解注册表，确保一个注解只绑定一个生成器
type Registry struct {
	mu sync.RWMutex

	annotations map[string]Generator // 注解名 -> 生成器
	generators  map[string]Generator // 生成器名 -> 生成器
}

func NewRegistry() *Registry {
	return &Registry{
		annotations: make(map[string]Generator),
		generators:  make(map[string]Generator),
	}
}

// Register 注册生成器，注解已被其他生成器绑定时返回错误
func (r *Registry) Register(gen Generator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := gen.Name()
	if _, ok := r.generators[name]; ok {
		return fmt.Errorf("生成器 %q 已注册", name)
	}
	for _, ann := range gen.Annotations() {
		if existing, ok := r.annotations[ann]; ok {
			return fmt.Errorf("注解 @%s 已被生成器 %q 绑定，无法被 %q 再次绑定", ann, existing.Name(), name)
		}
	}

	r.generators[name] = gen
	for _, ann := range gen.Annotations() {
		r.annotations[ann] = gen
	}
	return nil
}

// MustRegister 注册生成器，失败时 panic
func (r *Registry) MustRegister(gen Generator) {
	if err := r.Register(gen); err != nil {
		panic(err)
	}
}

// GetByAnnotation 根据注解名获取生成器
func (r *Registry) GetByAnnotation(annotation string) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.annotations[annotation]
	return gen, ok
}

// GetByName 根据生成器名获取生成器
func (r *Registry) GetByName(name string) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[name]
	return gen, ok
}

// Generators 按优先级、名称排序返回所有生成器
func (r *Registry) Generators() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Values(r.generators)
	slices.SortFunc(result, func(a, b Generator) int {
		if c := cmp.Compare(a.Priority(), b.Priority()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
	return result
}

// Annotations 返回排序后的所有已注册注解
func (r *Registry) Annotations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Keys(r.annotations)
	slices.Sort(result)
	return result
}

// IsRegistered 检查注解是否已注册
func (r *Registry) IsRegistered(annotation string) bool {
	_, ok := r.GetByAnnotation(annotation)
	return ok
}

// DispatchTargets 将扫描结果分发给对应的生成器
// 返回 生成器名 -> 目标；注解写在不支持的目标类型上时返回错误
func (r *Registry) DispatchTargets(result *ScanResult) (map[string][]*AnnotatedTarget, []error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dispatch := make(map[string][]*AnnotatedTarget)
	var errs []error

	for _, target := range result.All() {
		for _, ann := range target.Annotations {
			gen, ok := r.annotations[ann.Name]
			if !ok {
				continue
			}
			if !supports(gen, target.Target.Kind) {
				kinds := lo.Map(gen.SupportedTargets(), func(k TargetKind, _ int) string { return k.String() })
				errs = append(errs, fmt.Errorf("%s: @%s 只能用于 %s，%s 是 %s",
					target.Target.Position, ann.Name, strings.Join(kinds, "/"), target.Target.Name, target.Target.Kind))
				continue
			}
			if !slices.Contains(dispatch[gen.Name()], target) {
				dispatch[gen.Name()] = append(dispatch[gen.Name()], target)
			}
		}
	}
	return dispatch, errs
}

var globalRegistry = NewRegistry()

// Global 返回全局注册表
func Global() *Registry {
	return globalRegistry
}

// Register 向全局注册表注册生成器
func Register(gen Generator) error {
	return globalRegistry.Register(gen)
}

// MustRegister 向全局注册表注册生成器，失败时 panic
func MustRegister(gen Generator) {
	globalRegistry.MustRegister(gen)
}
