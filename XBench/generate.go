// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/eframework-org/GO.BENCH/XTrack"
	"github.com/eframework-org/GO.UTIL/XObject"
)

// Generate 生成 count 个实体，count 小于 0 时视为 0。
//
// 第 seq 个实体（从 1 开始）的整数列均为 seq，字符串列均为 "<小写字段名>_<seq>"，主键保持为 0。
// 每个导航列表填充 RelationCount 个新的从属实体，从属实体的列由保存操作填充。
func Generate[T any, PT interface {
	*T
	XTrack.IEntity
}](count int) []PT {
	if count < 0 {
		count = 0
	}
	rets := make([]PT, count)
	for i := range count {
		entity := PT(XObject.New[T]())
		fill(reflect.ValueOf(entity).Elem(), i+1)
		rets[i] = entity
	}
	return rets
}

// GenerateShape 生成 count 个指定形态的实体。
func GenerateShape(count int, shape Shape) []XTrack.IEntity {
	switch shape {
	case ShapeOne:
		return toEntities(Generate[OneRelation](count))
	case ShapeTwo:
		return toEntities(Generate[TwoRelation](count))
	default:
		return toEntities(Generate[ZeroRelation](count))
	}
}

// GenerateOne 生成一个指定形态的实体，序号为 1。
func GenerateOne(shape Shape) XTrack.IEntity {
	return GenerateShape(1, shape)[0]
}

func toEntities[PT XTrack.IEntity](list []PT) []XTrack.IEntity {
	rets := make([]XTrack.IEntity, len(list))
	for i, entity := range list {
		rets[i] = entity
	}
	return rets
}

func fill(ind reflect.Value, seq int) {
	typ := ind.Type()
	suffix := "_" + strconv.Itoa(seq)
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		field := ind.Field(i)

		if sf.Tag.Get("track") != "" {
			list := reflect.MakeSlice(sf.Type, relationCount, relationCount)
			for j := range relationCount {
				list.Index(j).Set(reflect.New(sf.Type.Elem().Elem()))
			}
			field.Set(list)
			continue
		}

		tag := sf.Tag.Get("orm")
		if tag == "-" || isPrimary(tag) {
			continue
		}
		switch field.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			field.SetInt(int64(seq))
		case reflect.String:
			field.SetString(strings.ToLower(sf.Name) + suffix)
		}
	}
}

func isPrimary(tag string) bool {
	for _, option := range strings.Split(tag, ";") {
		if strings.TrimSpace(option) == "pk" {
			return true
		}
	}
	return false
}
