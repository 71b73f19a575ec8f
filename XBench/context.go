// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import "github.com/eframework-org/GO.BENCH/XTrack"

// Context 为每种实体形态提供一个数据表视图。
type Context struct {
	*XTrack.Context
	ZeroRelations *XTrack.Table[*ZeroRelation]
	OneRelations  *XTrack.Table[*OneRelation]
	TwoRelations  *XTrack.Table[*TwoRelation]
}

// OpenContext 打开一个新的上下文，上下文绑定当前 goroutine，使用后需要调用 Close。
func OpenContext(alias ...string) *Context {
	ctx := &Context{Context: XTrack.Open(alias...)}
	ctx.ZeroRelations = XTrack.NewTable(ctx.Context, NewZeroRelation())
	ctx.OneRelations = XTrack.NewTable(ctx.Context, NewOneRelation())
	ctx.TwoRelations = XTrack.NewTable(ctx.Context, NewTwoRelation())
	return ctx
}

// CountOf 返回指定形态的数据表的记录数量。
func (ctx *Context) CountOf(shape Shape) (int, error) {
	switch shape {
	case ShapeOne:
		return ctx.OneRelations.Count()
	case ShapeTwo:
		return ctx.TwoRelations.Count()
	default:
		return ctx.ZeroRelations.Count()
	}
}

// TruncateOf 清空指定形态的数据表及其从属数据表。
func (ctx *Context) TruncateOf(shape Shape) (int, error) {
	switch shape {
	case ShapeOne:
		return ctx.OneRelations.Truncate()
	case ShapeTwo:
		return ctx.TwoRelations.Truncate()
	default:
		return ctx.ZeroRelations.Truncate()
	}
}
