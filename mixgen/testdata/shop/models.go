package shop

import "time"

// Item 商品
// @Strunemix(label=snake, derive="String|JSON")
type Item struct {
	SKU       string
	Price     int64
	CreatedAt time.Time
}

// @Strunemix(default=NewCart, parse=auto)
type Cart struct {
	Owner string
	Count int
	dirty bool `strunemix:"skip"`
}

func NewCart() Cart {
	return Cart{dirty: true}
}

// @Strunemix(default=missingFunc)
type Broken struct {
	Name  string
	cache []byte `strunemix:"skip"`
}

// @Strunemix(label=camel)
type BadParam struct {
	Name string
}

// Plain 没有注解
type Plain struct {
	Name string
}
