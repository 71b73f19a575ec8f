// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"reflect"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/pkg/errors"
)

// Truncate 删除指定实体数据表的所有记录。
//
// 从属实体的数据表会先于所属实体被清空（整表清空，包括其他所属实体的记录）。
// 此操作直接作用于数据库，不会修改追踪集合，返回删除的记录总数。
func (ctx *Context) Truncate(models ...IEntity) (int, error) {
	if err := ctx.check("Truncate"); err != nil {
		return 0, err
	}
	ormer, err := ctx.ormer("Truncate")
	if err != nil {
		return 0, err
	}

	total := 0
	visited := make(map[reflect.Type]bool)
	for _, model := range models {
		count, err := truncate(ormer, model, visited)
		total += count
		if err != nil {
			return total, errors.Wrapf(err, "XTrack.Truncate: context-%v", ctx.id)
		}
	}
	return total, nil
}

func truncate(ormer orm.Ormer, model IEntity, visited map[reflect.Type]bool) (int, error) {
	schema := getSchema(model)
	if schema == nil {
		return 0, errors.Wrapf(ErrUnregistered, "%T", model)
	}
	if visited[schema.typ] {
		return 0, nil
	}
	visited[schema.typ] = true

	total := 0
	for _, nav := range schema.navs {
		child := reflect.New(nav.elem.Elem()).Interface().(IEntity)
		count, err := truncate(ormer, child, visited)
		total += count
		if err != nil {
			return total, err
		}
	}

	// beego orm 的 Delete 方法需要条件，使用主键字段 >= 0 匹配所有记录
	count, err := ormer.QueryTable(model).Filter(schema.pk.column+"__gte", 0).Delete()
	if err != nil {
		return total, errors.Wrapf(err, "delete from %v", schema.table)
	}
	XLog.Notice("XTrack.Truncate: %v row(s) of %v has been deleted.", count, schema.table)
	return total + int(count), nil
}
