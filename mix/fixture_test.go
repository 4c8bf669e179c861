package mix_test

import (
	"github.com/donutnomad/strunemix/mix"
)

// 手写的 Car 伴生枚举，形状与生成代码一致

type carAttrName int

const (
	carAttrNameBrand carAttrName = 0
	carAttrNameSeats carAttrName = 1
	carAttrNameOwner carAttrName = 2
)

var carNames = []carAttrName{carAttrNameBrand, carAttrNameSeats, carAttrNameOwner}

func (n carAttrName) Label() string {
	switch n {
	case carAttrNameBrand:
		return "brand"
	case carAttrNameSeats:
		return "seats"
	case carAttrNameOwner:
		return "owner"
	}
	return ""
}

func (carAttrName) EnumName() string { return "CarAttrName" }

type carAttrData interface {
	mix.Data[carAttrName]
	isCarAttrData()
}

type carBrand struct{ Value string }
type carSeats struct{ Value int }
type carOwner struct{ Value string }

func (carBrand) AttrName() carAttrName { return carAttrNameBrand }
func (carSeats) AttrName() carAttrName { return carAttrNameSeats }
func (carOwner) AttrName() carAttrName { return carAttrNameOwner }

func (d carBrand) AttrValue() any { return d.Value }
func (d carSeats) AttrValue() any { return d.Value }
func (d carOwner) AttrValue() any { return d.Value }

func (carBrand) isCarAttrData() {}
func (carSeats) isCarAttrData() {}
func (carOwner) isCarAttrData() {}

type carForm[M any] = mix.Form[carAttrName, carAttrData, M]

func newCarForm[M any]() *carForm[M] {
	return mix.NewForm[carAttrName, carAttrData, M](carNames)
}

func parseCar(name carAttrName, text string) (carAttrData, error) {
	switch name {
	case carAttrNameBrand:
		v, err := mix.ParseString(text)
		return carBrand{Value: v}, err
	case carAttrNameSeats:
		v, err := mix.ParseInt[int](text)
		return carSeats{Value: v}, err
	case carAttrNameOwner:
		v, err := mix.ParseString(text)
		return carOwner{Value: v}, err
	}
	return nil, mix.NotAnEnumName(name.Label(), name.EnumName())
}

func decodeCar(name carAttrName, raw []byte) (carAttrData, error) {
	switch name {
	case carAttrNameBrand:
		v, err := mix.DecodeValue[string](raw)
		return carBrand{Value: v}, err
	case carAttrNameSeats:
		v, err := mix.DecodeValue[int](raw)
		return carSeats{Value: v}, err
	case carAttrNameOwner:
		v, err := mix.DecodeValue[string](raw)
		return carOwner{Value: v}, err
	}
	return nil, mix.NotAnEnumName(name.Label(), name.EnumName())
}

type fieldMeta struct {
	Hint    string
	Touched int
}
