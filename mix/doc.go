// Package mix 是 strunemix 生成代码的运行时支撑库。
//
// 对于带有 @Strunemix 注解的结构体，生成器会产出两个伴生枚举：
//
//  1. 字段名枚举（Name）- 每个参与字段一个常量，可与字符串标签互转
//  2. 字段值枚举（Data）- 每个参与字段一个变体，携带该字段的值
//
// 本包定义了这两个枚举需要满足的接口、转换过程中的错误分类，
// 以及用于按字段逐步构建结构体的 Form 容器。
//
// # 基本用法
//
//	// @Strunemix
//	type Person struct {
//	    name string
//	    age  int
//	}
//
//	form := PersonEmptyForm[mix.NoMeta]()
//	_ = form.SetData(PersonAttrNameName, PersonAttrDataName{Value: "John"})
//	_ = form.SetData(PersonAttrNameAge, PersonAttrDataAge{Value: 42})
//	person, err := PersonFromForm(form)
//
// # 字符串访问
//
// Form 的所有访问器都有 ByLabel 版本，以字段名字符串为键。
// 字符串不是合法字段名时返回 *NotAnEnumNameError，不会 panic。
// 以 Name 为键的访问器永远不会失败，因为 Form 的键集合在构造后不再变化。
//
// # 字符串解析
//
// SetDataFromString 需要调用方提供 ParseFunc，本包只负责分发。
// 基本类型可以直接使用 ParseInt、ParseFloat、ParseBool、ParseChar、ParseString，
// 它们返回带有对应 ParseKind 的 *ParseError。
package mix
