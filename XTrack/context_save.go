// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"context"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XTime"
	"github.com/pkg/errors"
)

// SaveChanges 写入追踪集合中所有待处理的变更。
//
// 若开启了自动检测，会先执行一次变更检测。新建的实体按追踪顺序插入（所属实体先于从属实体，
// 从属实体在插入前获得所属实体的主键），已修改的实体执行更新，所有写入在同一个事务中完成。
// 成功后写入的实体被标记为未修改并刷新快照，返回写入的记录数量。
//
// 失败时事务被回滚，追踪状态保持不变，待写入的实体恢复为保存前的值（包括插入时回填的主键，
// 以及从属实体的 Owner 和 OwnerID），错误原样返回（附带上下文信息）。
// 调用方应当将错误视为本次迭代失败，而不是重试。
func (ctx *Context) SaveChanges() (int, error) {
	if err := ctx.check("SaveChanges"); err != nil {
		return 0, err
	}
	startTime := XTime.GetMicrosecond()
	defer func() {
		elapsed := XTime.GetMicrosecond() - startTime
		ctx.saveCount++
		ctx.saveElapsed += int64(elapsed)
		sharedMetrics.save.Observe(float64(elapsed) / 1e6)
	}()

	if ctx.auto {
		if err := ctx.detect(); err != nil {
			return 0, err
		}
	}

	var pending []*entry
	for _, e := range ctx.entries {
		if e.state == StateAdded || e.state == StateModified {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	ormer, err := ctx.ormer("SaveChanges")
	if err != nil {
		return 0, err
	}
	restores := make([]func(), len(pending))
	for i, e := range pending {
		restores[i] = e.backup()
	}
	err = ormer.DoTx(func(_ context.Context, tx orm.TxOrmer) error {
		for _, e := range pending {
			if err := e.push(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, restore := range restores { // 写入实体的列随事务一起回滚
			restore()
		}
		XLog.Error("XTrack.SaveChanges: context-%v failed to save %v entities: %v", ctx.id, len(pending), err)
		return 0, errors.Wrapf(err, "XTrack.SaveChanges: context-%v", ctx.id)
	}

	for _, e := range pending {
		if e.state == StateAdded {
			e.schema.created.Inc()
		} else {
			e.schema.updated.Inc()
		}
		e.accept()
	}
	return len(pending), nil
}
