// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"reflect"

	"github.com/eframework-org/GO.UTIL/XTime"
	"github.com/pkg/errors"
)

// Add 追踪一个新建实体。
//
// 若开启了自动检测，函数会先对整个追踪集合执行一次变更检测，因此耗时与已追踪的实体数量成正比；
// 关闭自动检测时只记录实体本身。实体导航列表中的从属实体会一并被标记为新建。
// 重复追踪同一个实体不会产生任何效果。此操作不会访问数据库。
func (ctx *Context) Add(entity IEntity) error {
	if err := ctx.check("Add"); err != nil {
		return err
	}
	startTime := XTime.GetMicrosecond()
	defer func() {
		ctx.addCount++
		ctx.addElapsed += int64(XTime.GetMicrosecond() - startTime)
	}()

	if ctx.auto {
		if err := ctx.detect(); err != nil {
			return err
		}
	}
	return ctx.attach(entity, nil, nil)
}

// AddRange 追踪一组新建实体。
//
// 追踪后的集合和耗时特征均与依次调用 Add 一致：若开启了自动检测，每个实体追踪前都会执行一次变更检测。
// 任意实体无效时不会追踪其中的任何实体。
func (ctx *Context) AddRange(entities []IEntity) error {
	if err := ctx.check("AddRange"); err != nil {
		return err
	}
	startTime := XTime.GetMicrosecond()
	defer func() {
		ctx.addCount++
		ctx.addElapsed += int64(XTime.GetMicrosecond() - startTime)
	}()

	for _, entity := range entities {
		if err := ctx.validate(entity); err != nil {
			return err
		}
	}
	for _, entity := range entities {
		if ctx.auto {
			if err := ctx.detect(); err != nil {
				return err
			}
		}
		if err := ctx.attach(entity, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// validate 检查实体是否可以被当前上下文追踪。
func (ctx *Context) validate(entity IEntity) error {
	if entity == nil || reflect.ValueOf(entity).IsNil() {
		return errors.Errorf("XTrack.Add: context-%v: nil entity", ctx.id)
	}
	schema := getSchema(entity)
	if schema == nil {
		return errors.Wrapf(ErrUnregistered, "XTrack.Add: context-%v: %T", ctx.id, entity)
	}
	if schema.alias != ctx.alias {
		return errors.Errorf("XTrack.Add: context-%v of %v can't track entity of %v", ctx.id, ctx.alias, schema.alias)
	}
	return nil
}

// attach 将实体及其从属实体加入追踪集合，所属实体总是排在从属实体之前。
func (ctx *Context) attach(entity IEntity, owner *entry, nav *schemaNavigation) error {
	if _, tracked := ctx.index[entity]; tracked {
		return nil
	}
	if err := ctx.validate(entity); err != nil {
		return err
	}

	e := &entry{entity: entity, schema: getSchema(entity), state: StateAdded, owner: owner, nav: nav}
	ctx.entries = append(ctx.entries, e)
	ctx.index[entity] = e
	e.schema.tracked.Inc()

	return ctx.attachChildren(e)
}

// attachChildren 追踪实体导航列表中尚未被追踪的从属实体。
func (ctx *Context) attachChildren(e *entry) error {
	for _, nav := range e.schema.navs {
		for _, child := range e.schema.children(e.entity, nav) {
			if err := ctx.attach(child, e, nav); err != nil {
				return err
			}
		}
	}
	return nil
}
