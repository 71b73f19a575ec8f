// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"reflect"

	"github.com/beego/beego/v2/client/orm"
	"github.com/pkg/errors"
)

// EntityState 定义了实体在上下文中的追踪状态。
type EntityState int

const (
	StateDetached  EntityState = iota // 未被追踪
	StateUnchanged                    // 与快照一致
	StateAdded                        // 新建，尚未写入
	StateModified                     // 已修改，尚未写入
)

func (s EntityState) String() string {
	switch s {
	case StateUnchanged:
		return "Unchanged"
	case StateAdded:
		return "Added"
	case StateModified:
		return "Modified"
	default:
		return "Detached"
	}
}

// Entry 是追踪集合中一个实体的只读视图。
type Entry struct {
	Entity IEntity
	State  EntityState
}

// entry 定义了上下文中追踪的实体。
type entry struct {
	entity   IEntity           // 工作实例
	schema   *entitySchema     // 描述信息
	state    EntityState       // 追踪状态
	snapshot []any             // 上次同步时的列值，新建实体为 nil
	owner    *entry            // 所属实体，仅从属实体有效
	nav      *schemaNavigation // 所属的导航列表，仅从属实体有效
}

// changed 对比当前列值与快照。
func (e *entry) changed() bool {
	if e.snapshot == nil {
		return false
	}
	current := e.schema.values(e.entity)
	for i := range current {
		if current[i] != e.snapshot[i] {
			return true
		}
	}
	return false
}

// accept 在写入成功后将实体标记为未修改并刷新快照。
func (e *entry) accept() {
	e.state = StateUnchanged
	e.snapshot = e.schema.values(e.entity)
}

// push 在事务中写入实体，从属实体在写入前绑定所属关系。
// backup 复制实体当前的值，返回的函数将实体恢复为复制时的值。
func (e *entry) backup() func() {
	value := reflect.ValueOf(e.entity).Elem()
	saved := reflect.New(value.Type()).Elem()
	saved.Set(value)
	return func() { value.Set(saved) }
}

func (e *entry) push(tx orm.TxOrmer) error {
	switch e.state {
	case StateAdded:
		if e.owner != nil {
			e.entity.(IOwned).Own(e.owner.schema.table+"."+e.nav.name, e.owner.schema.identity(e.owner.entity))
		}
		if _, err := tx.Insert(e.entity); err != nil {
			return errors.Wrapf(err, "insert into %v", e.schema.table)
		}
	case StateModified:
		if _, err := tx.Update(e.entity); err != nil {
			return errors.Wrapf(err, "update %v(%v)", e.schema.table, e.schema.identity(e.entity))
		}
	}
	return nil
}
