// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"testing"

	"github.com/beego/beego/v2/client/orm"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestContextSave 测试批量保存。
func TestContextSave(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		defer ResetTrackTest(t)
		ResetTrackTest(t)

		ctx := Open()
		defer ctx.Close()

		parents := []IEntity{}
		for i := range 10 {
			parent := NewTestParent()
			parent.Num = i + 1
			parent.Text = "text"
			parents = append(parents, parent)
		}
		assert.NoError(t, ctx.AddRange(parents))

		count, err := ctx.SaveChanges()
		assert.NoError(t, err)
		assert.Equal(t, 10, count, "应当写入全部新建的实体。")

		ids := map[int]bool{}
		for _, entity := range parents {
			parent := entity.(*TestParent)
			assert.Greater(t, parent.ID, 0, "写入后应当回填主键。")
			ids[parent.ID] = true
			assert.Equal(t, StateUnchanged, ctx.State(parent))
		}
		assert.Len(t, ids, 10, "主键应当唯一。")

		rows, err := ctx.Count(NewTestParent())
		assert.NoError(t, err)
		assert.Equal(t, 10, rows)

		var stored []*TestParent
		_, err = orm.NewOrmUsingDB(DefaultAlias).QueryTable(NewTestParent()).OrderBy("id").All(&stored)
		assert.NoError(t, err)
		if assert.Len(t, stored, 10) {
			for i, parent := range stored {
				assert.Equal(t, parents[i].(*TestParent).ID, parent.ID)
				assert.Equal(t, i+1, parent.Num, "读取的列值应当与写入的一致。")
				assert.Equal(t, "text", parent.Text)
			}
		}
	})

	t.Run("graph", func(t *testing.T) {
		defer ResetTrackTest(t)
		ResetTrackTest(t)

		ctx := Open()
		defer ctx.Close()

		parent := NewTestGraph(1, 2, 2)
		assert.NoError(t, ctx.Add(parent))

		count, err := ctx.SaveChanges()
		assert.NoError(t, err)
		assert.Equal(t, 5, count)

		for _, child := range parent.Children {
			assert.Equal(t, parent.ID, child.OwnerID, "从属实体应当引用所属实体的主键。")
			assert.Equal(t, "track_parent.children", child.Owner)
		}
		for _, child := range parent.Others {
			assert.Equal(t, parent.ID, child.OwnerID)
			assert.Equal(t, "track_parent.others", child.Owner)
		}

		rows, _ := ctx.Count(NewTestParent())
		assert.Equal(t, 1, rows)
		rows, _ = ctx.Count(NewTestChild(0))
		assert.Equal(t, 4, rows)
	})

	t.Run("modified", func(t *testing.T) {
		defer ResetTrackTest(t)
		ResetTrackTest(t)

		ctx := Open()
		defer ctx.Close()

		parent := NewTestGraph(1, 1, 0)
		assert.NoError(t, ctx.Add(parent))
		_, err := ctx.SaveChanges()
		assert.NoError(t, err)

		count, err := ctx.SaveChanges()
		assert.NoError(t, err)
		assert.Equal(t, 0, count, "没有变更时不应当写入。")

		before := testutil.ToFloat64(Metrics().Saved("track_parent", "update"))
		parent.Num = 99
		count, err = ctx.SaveChanges()
		assert.NoError(t, err)
		assert.Equal(t, 1, count, "应当只写入修改的实体。")
		assert.Equal(t, before+1, testutil.ToFloat64(Metrics().Saved("track_parent", "update")))

		stored := &TestParent{ID: parent.ID}
		assert.NoError(t, orm.NewOrmUsingDB(DefaultAlias).Read(stored))
		assert.Equal(t, 99, stored.Num)
	})

	t.Run("auto_disabled", func(t *testing.T) {
		defer ResetTrackTest(t)
		ResetTrackTest(t)

		ctx := Open()
		defer ctx.Close()

		parent := NewTestGraph(1, 0, 0)
		assert.NoError(t, ctx.Add(parent))
		_, err := ctx.SaveChanges()
		assert.NoError(t, err)

		ctx.AutoDetectChanges(false)
		parent.Num = 99
		count, err := ctx.SaveChanges()
		assert.NoError(t, err)
		assert.Equal(t, 0, count, "关闭自动检测时未检测的修改不应当写入。")

		assert.NoError(t, ctx.DetectChanges())
		count, err = ctx.SaveChanges()
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("failure", func(t *testing.T) {
		defer ResetTrackTest(t)
		ResetTrackTest(t)

		first := Open()
		defer first.Close()
		existing := NewTestGraph(1, 0, 0)
		assert.NoError(t, first.Add(existing))
		_, err := first.SaveChanges()
		assert.NoError(t, err)

		second := Open()
		defer second.Close()
		conflict := NewTestGraph(2, 2, 0)
		conflict.ID = existing.ID
		assert.NoError(t, second.Add(conflict))

		count, err := second.SaveChanges()
		assert.Error(t, err, "主键冲突时保存应当出错。")
		assert.Equal(t, 0, count)
		assert.Equal(t, existing.ID, conflict.ID, "失败后主键应当保持不变。")
		assert.Equal(t, StateAdded, second.State(conflict), "失败后追踪状态应当保持不变。")

		rows, _ := second.Count(NewTestParent())
		assert.Equal(t, 1, rows)
		rows, _ = second.Count(NewTestChild(0))
		assert.Equal(t, 0, rows, "失败后事务应当被回滚。")
	})

	t.Run("failure_owner", func(t *testing.T) {
		defer ResetTrackTest(t)
		ResetTrackTest(t)

		first := Open()
		defer first.Close()
		existing := NewTestGraph(1, 1, 0)
		assert.NoError(t, first.Add(existing))
		_, err := first.SaveChanges()
		assert.NoError(t, err)

		// 所属实体可以插入，从属实体的主键冲突
		second := Open()
		defer second.Close()
		parent := NewTestGraph(2, 1, 0)
		child := parent.Children[0]
		child.ID = existing.Children[0].ID
		assert.NoError(t, second.Add(parent))

		_, err = second.SaveChanges()
		assert.Error(t, err, "从属实体主键冲突时保存应当出错。")
		assert.Equal(t, 0, parent.ID, "失败后所属实体的主键应当被恢复。")
		assert.Equal(t, existing.Children[0].ID, child.ID)
		assert.Equal(t, 0, child.OwnerID, "失败后从属实体的所属主键应当被恢复。")
		assert.Empty(t, child.Owner, "失败后从属实体的所属名称应当被恢复。")
		assert.Equal(t, StateAdded, second.State(parent))
		assert.Equal(t, StateAdded, second.State(child))

		rows, _ := second.Count(NewTestParent())
		assert.Equal(t, 1, rows, "失败后事务应当被回滚。")
		rows, _ = second.Count(NewTestChild(0))
		assert.Equal(t, 1, rows)

		// 恢复后的实体可以在修正后重新保存
		child.ID = 0
		count, err := second.SaveChanges()
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, parent.ID, child.OwnerID)
		assert.Equal(t, "track_parent.children", child.Owner)
	})

	t.Run("metrics", func(t *testing.T) {
		defer ResetTrackTest(t)
		ResetTrackTest(t)

		ctx := Open()
		defer ctx.Close()

		tracked := testutil.ToFloat64(Metrics().Tracked("track_child"))
		created := testutil.ToFloat64(Metrics().Saved("track_child", "create"))
		assert.NoError(t, ctx.Add(NewTestGraph(1, 3, 0)))
		_, err := ctx.SaveChanges()
		assert.NoError(t, err)

		assert.Equal(t, tracked+3, testutil.ToFloat64(Metrics().Tracked("track_child")))
		assert.Equal(t, created+3, testutil.ToFloat64(Metrics().Saved("track_child", "create")))
		assert.Equal(t, int64(1), ctx.saveCount)
	})
}
