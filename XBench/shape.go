// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"strings"

	"github.com/eframework-org/GO.BENCH/XTrack"
	"github.com/pkg/errors"
)

// Shape 表示实体的导航列表数量。
type Shape int

const (
	ShapeZero Shape = iota // 没有导航列表
	ShapeOne               // 一个导航列表
	ShapeTwo               // 两个导航列表
)

// Shapes 包含所有的实体形态。
var Shapes = []Shape{ShapeZero, ShapeOne, ShapeTwo}

func (s Shape) String() string {
	switch s {
	case ShapeZero:
		return "ZeroRelation"
	case ShapeOne:
		return "OneRelation"
	case ShapeTwo:
		return "TwoRelation"
	default:
		return "Unknown"
	}
}

// New 创建该形态的空实体。
func (s Shape) New() XTrack.IEntity {
	switch s {
	case ShapeOne:
		return NewOneRelation()
	case ShapeTwo:
		return NewTwoRelation()
	default:
		return NewZeroRelation()
	}
}

// Relations 返回该形态的导航列表数量。
func (s Shape) Relations() int {
	switch s {
	case ShapeOne:
		return 1
	case ShapeTwo:
		return 2
	default:
		return 0
	}
}

// ParseShape 解析实体形态，支持名称（不区分大小写）和导航列表数量。
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, shape := range Shapes {
		if name == strings.ToLower(shape.String()) || name == strings.TrimSuffix(strings.ToLower(shape.String()), "relation") {
			return shape, nil
		}
	}
	switch name {
	case "0":
		return ShapeZero, nil
	case "1":
		return ShapeOne, nil
	case "2":
		return ShapeTwo, nil
	}
	return ShapeZero, errors.Errorf("XBench.ParseShape: unknown shape %q", name)
}
