// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
)

const (
	// benchBatchSizePrefs 定义了分批保存时单个批次的实体数量的偏好设置键。
	benchBatchSizePrefs = "Bench/Batch"

	// benchRelationCountPrefs 定义了每个导航列表生成的从属实体数量的偏好设置键。
	benchRelationCountPrefs = "Bench/Relations"

	defaultBatchSize     = 1000
	defaultRelationCount = 2
)

var (
	// batchSize 定义了分批保存时单个批次的实体数量。
	batchSize int = defaultBatchSize

	// relationCount 定义了每个导航列表生成的从属实体数量。
	relationCount int = defaultRelationCount
)

func init() { setupBench(XPrefs.Asset()) }

// setupBench 从 prefs 中读取基准测试的参数，非法的值会被重置为默认值。
func setupBench(prefs XPrefs.IBase) {
	if prefs == nil {
		XLog.Panic("XBench.Setup: prefs is nil.")
		return
	}

	batchSize = prefs.GetInt(benchBatchSizePrefs, defaultBatchSize)
	relationCount = prefs.GetInt(benchRelationCountPrefs, defaultRelationCount)

	if batchSize <= 0 {
		XLog.Warn("XBench.Setup: invalid batch size %v, fallback to %v.", batchSize, defaultBatchSize)
		batchSize = defaultBatchSize
	}
	if relationCount < 1 {
		XLog.Warn("XBench.Setup: invalid relation count %v, fallback to %v.", relationCount, defaultRelationCount)
		relationCount = defaultRelationCount
	}
}

// BatchSize 检查或设置分批保存时单个批次的实体数量。
func BatchSize(size ...int) int {
	if len(size) > 0 && size[0] > 0 {
		batchSize = size[0]
	}
	return batchSize
}

// RelationCount 检查或设置每个导航列表生成的从属实体数量，导航列表不能为空，小于 1 的值会被忽略。
func RelationCount(count ...int) int {
	if len(count) > 0 && count[0] >= 1 {
		relationCount = count[0]
	}
	return relationCount
}
