// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestContextCount 测试统计数据表的记录数量。
func TestContextCount(t *testing.T) {
	defer ResetTrackTest(t)
	ResetTrackTest(t)

	ctx := Open()
	defer ctx.Close()

	rows, err := ctx.Count(NewTestParent())
	assert.NoError(t, err)
	assert.Equal(t, 0, rows)

	assert.NoError(t, ctx.Add(NewTestGraph(1, 2, 0)))
	rows, _ = ctx.Count(NewTestParent())
	assert.Equal(t, 0, rows, "保存前不应当访问数据库。")

	_, err = ctx.SaveChanges()
	assert.NoError(t, err)
	rows, _ = ctx.Count(NewTestParent())
	assert.Equal(t, 1, rows)
	rows, _ = ctx.Count(NewTestChild(0))
	assert.Equal(t, 2, rows)

	_, err = ctx.Count(&TestOrphan{})
	assert.True(t, errors.Is(err, ErrUnregistered))

	missing := Open("track_missing")
	defer missing.Close()
	_, err = missing.Count(NewTestParent())
	assert.Error(t, err, "未注册的数据库应当出错。")
}
