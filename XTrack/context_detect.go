// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import "github.com/eframework-org/GO.UTIL/XTime"

// DetectChanges 同步追踪集合与实体的当前状态。
//
// 函数遍历整个追踪集合：未修改的实体若列值与快照不一致则标记为已修改；
// 导航列表中新出现的从属实体会被标记为新建并加入追踪集合。
// 耗时取决于追踪集合和关系图的规模，而不仅是新追踪的实体数量。
func (ctx *Context) DetectChanges() error {
	if err := ctx.check("DetectChanges"); err != nil {
		return err
	}
	return ctx.detect()
}

func (ctx *Context) detect() error {
	startTime := XTime.GetMicrosecond()
	defer func() {
		ctx.detectCount++
		ctx.detectElapsed += int64(XTime.GetMicrosecond() - startTime)
		sharedMetrics.detect.Inc()
	}()

	// 遍历过程中追踪集合可能增长，新追踪的实体同样需要检查
	for i := 0; i < len(ctx.entries); i++ {
		e := ctx.entries[i]
		if e.state == StateUnchanged && e.changed() {
			e.state = StateModified
		}
		if len(e.schema.navs) > 0 {
			if err := ctx.attachChildren(e); err != nil {
				return err
			}
		}
	}
	return nil
}
