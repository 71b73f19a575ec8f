// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

// Table 是上下文中某一类实体的类型化视图。
type Table[T IEntity] struct {
	ctx   *Context
	model T
}

// NewTable 创建实体的类型化视图，model 为该类实体的任意实例。
func NewTable[T IEntity](ctx *Context, model T) *Table[T] {
	return &Table[T]{ctx: ctx, model: model}
}

// Name 返回数据表名称。
func (t *Table[T]) Name() string { return t.model.TableName() }

// Add 追踪一个新建实体。
func (t *Table[T]) Add(entity T) error { return t.ctx.Add(entity) }

// AddRange 追踪一组新建实体。
func (t *Table[T]) AddRange(entities []T) error {
	list := make([]IEntity, len(entities))
	for i, entity := range entities {
		list[i] = entity
	}
	return t.ctx.AddRange(list)
}

// Count 返回数据表的记录数量。
func (t *Table[T]) Count() (int, error) { return t.ctx.Count(t.model) }

// Truncate 清空数据表及其从属数据表。
func (t *Table[T]) Truncate() (int, error) { return t.ctx.Truncate(t.model) }
