// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import "github.com/pkg/errors"

var (
	// ErrDisposed 表示上下文已被关闭。
	ErrDisposed = errors.New("context was disposed")

	// ErrForeignGoroutine 表示上下文被其他 goroutine 使用。
	ErrForeignGoroutine = errors.New("context was used by a foreign goroutine")

	// ErrUnregistered 表示实体未注册。
	ErrUnregistered = errors.New("entity was not registered")
)

// IStore 定义了可追踪的持久化存储。
// 基准测试只依赖此接口，因此可以替换为任意的存储实现。
type IStore interface {
	// Add 追踪一个新建实体及其从属实体，不访问数据库。
	Add(entity IEntity) error

	// AddRange 追踪一组新建实体，结果和耗时特征与依次调用 Add 一致。
	AddRange(entities []IEntity) error

	// DetectChanges 同步追踪集合与实体的当前状态。
	DetectChanges() error

	// SaveChanges 写入所有待处理的变更，返回写入的记录数量。
	SaveChanges() (int, error)

	// AutoDetectChanges 检查或设置是否自动检测变更。
	AutoDetectChanges(enabled ...bool) bool

	// Truncate 删除指定实体及其从属实体数据表的所有记录，返回删除的记录数量。
	Truncate(models ...IEntity) (int, error)

	// Count 返回指定实体数据表的记录数量。
	Count(model IEntity) (int, error)

	// Entries 返回追踪集合的视图。
	Entries() []Entry

	// State 返回实体的追踪状态，未被追踪时返回 StateDetached。
	State(entity IEntity) EntityState

	// Close 释放上下文，之后的任何操作都会返回 ErrDisposed。
	Close() error
}

var _ IStore = (*Context)(nil)
