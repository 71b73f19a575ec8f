// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"fmt"
	"sync/atomic"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XString"
	"github.com/eframework-org/GO.UTIL/XTime"
	"github.com/petermattis/goid"
	"github.com/pkg/errors"
)

// contextID 是上下文 ID 的原子计数器。
var contextID int64

// Context 定义了变更追踪的上下文，实现了 IStore 接口。
//
// 上下文是一次性的：每次迭代（或每个分批）打开一个新的上下文，使用完毕后关闭，关闭后不可复用。
// 上下文绑定打开它的 goroutine，其他 goroutine 的调用会返回 ErrForeignGoroutine。
type Context struct {
	id      int64              // 上下文标识
	gid     int64              // 所属 goroutine
	alias   string             // 数据库别名
	auto    bool               // 是否自动检测变更
	closed  bool               // 是否已关闭
	time    int                // 打开时间
	entries []*entry           // 追踪集合，按追踪顺序排列
	index   map[IEntity]*entry // 追踪索引

	addCount      int64 // 追踪操作次数
	addElapsed    int64 // 追踪操作耗时
	detectCount   int64 // 检测操作次数
	detectElapsed int64 // 检测操作耗时
	saveCount     int64 // 保存操作次数
	saveElapsed   int64 // 保存操作耗时
}

// Open 打开一个新的上下文。
// alias 是可选的，默认为 DefaultAlias。自动检测变更默认开启。
//
// 使用示例：
//
//	ctx := XTrack.Open()
//	defer ctx.Close()
func Open(alias ...string) *Context {
	name := DefaultAlias
	if len(alias) > 0 && !XString.IsEmpty(alias[0]) {
		name = alias[0]
	}
	ctx := &Context{
		id:    atomic.AddInt64(&contextID, 1),
		gid:   goid.Get(),
		alias: name,
		auto:  true,
		time:  XTime.GetMicrosecond(),
		index: make(map[IEntity]*entry),
	}
	if traceContext {
		XLog.Info("XTrack.Open: context-%v of %v has been opened.", ctx.id, name)
	}
	return ctx
}

// Close 关闭上下文并释放追踪集合，重复调用是安全的。
func (ctx *Context) Close() error {
	if ctx.closed {
		return nil
	}
	ctx.closed = true

	if traceContext && XLog.Able(XLog.LevelInfo) {
		otherCost := int64(XTime.GetMicrosecond() - ctx.time)
		var crudLog string
		if ctx.addCount > 0 {
			crudLog += fmt.Sprintf("[Add(%v):%.2fms] ", ctx.addCount, float64(ctx.addElapsed)/1e3)
			otherCost -= ctx.addElapsed
		}
		if ctx.detectCount > 0 {
			crudLog += fmt.Sprintf("[Detect(%v):%.2fms] ", ctx.detectCount, float64(ctx.detectElapsed)/1e3)
			otherCost -= ctx.detectElapsed
		}
		if ctx.saveCount > 0 {
			crudLog += fmt.Sprintf("[Save(%v):%.2fms] ", ctx.saveCount, float64(ctx.saveElapsed)/1e3)
			otherCost -= ctx.saveElapsed
		}
		XLog.Info("XTrack.Close: context-%v has been closed, elapsed %.2fms for %v[Other:%.2fms], tracked %v entities.",
			ctx.id,
			float64(XTime.GetMicrosecond()-ctx.time)/1e3,
			crudLog,
			float64(otherCost)/1e3,
			len(ctx.entries))
	}

	ctx.entries = nil
	ctx.index = nil
	return nil
}

// AutoDetectChanges 检查或设置是否自动检测变更。
// 开启时，Add 和 SaveChanges 会先对整个追踪集合执行一次变更检测，AddRange 在追踪每个实体前各执行一次。
func (ctx *Context) AutoDetectChanges(enabled ...bool) bool {
	if len(enabled) > 0 {
		ctx.auto = enabled[0]
	}
	return ctx.auto
}

// Entries 返回追踪集合的视图，按追踪顺序排列。
func (ctx *Context) Entries() []Entry {
	rets := make([]Entry, len(ctx.entries))
	for i, e := range ctx.entries {
		rets[i] = Entry{Entity: e.entity, State: e.state}
	}
	return rets
}

// State 返回实体的追踪状态，未被追踪则返回 StateDetached。
func (ctx *Context) State(entity IEntity) EntityState {
	if e := ctx.index[entity]; e != nil {
		return e.state
	}
	return StateDetached
}

// check 检查上下文是否可用。
func (ctx *Context) check(op string) error {
	if ctx.closed {
		return errors.Wrapf(ErrDisposed, "XTrack.%v: context-%v", op, ctx.id)
	}
	if gid := goid.Get(); gid != ctx.gid {
		return errors.Wrapf(ErrForeignGoroutine, "XTrack.%v: context-%v was opened on goroutine %v but used on %v", op, ctx.id, ctx.gid, gid)
	}
	return nil
}

// ormer 创建上下文所用数据库的 orm 实例。
func (ctx *Context) ormer(op string) (orm.Ormer, error) {
	if _, err := orm.GetDB(ctx.alias); err != nil {
		return nil, errors.Wrapf(err, "XTrack.%v: context-%v", op, ctx.id)
	}
	return orm.NewOrmUsingDB(ctx.alias), nil
}
