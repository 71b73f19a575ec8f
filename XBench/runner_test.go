// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRunner(t *testing.T) {
	defer ResetBenchTest(t)
	ResetBenchTest(t)

	t.Run("grid", func(t *testing.T) {
		var progress []*Result
		runner := &Runner{
			Iterations: 2,
			Counts:     []int{3, 5},
			Progress:   func(result *Result) { progress = append(progress, result) },
		}
		report := runner.Run(AutoDetectChangesDisabled(), AddNextEntity())

		// 2 个用例 × 2 个数量 + 1 个用例 × 3 个形态 × 2 个数量
		if assert.Len(t, report.Results, 10) {
			for _, result := range report.Results {
				assert.False(t, result.Failed(), result.Error)
				assert.Equal(t, 2, result.Iterations)
				assert.LessOrEqual(t, result.Min, result.Mean)
				assert.LessOrEqual(t, result.Mean, result.Max)
			}
			assert.Equal(t, SuiteAutoDetectChangesDisabled, report.Results[0].Suite)
			assert.Equal(t, 3, report.Results[0].Count)
			assert.Equal(t, "OneRelation", report.Results[6].Shape)
		}
		assert.Equal(t, report.Results, progress)
		assert.False(t, report.Interrupted)
		assert.NotEmpty(t, report.ID)
		assert.Positive(t, report.Elapsed)
	})

	t.Run("filter", func(t *testing.T) {
		runner := &Runner{
			Counts: []int{2},
			Shapes: []Shape{ShapeTwo},
			Filter: func(c *Case) bool { return c.Name == "BatchEntities_AddRange" },
		}
		report := runner.Run(BatchSave())
		if assert.Len(t, report.Results, 1) {
			assert.Equal(t, "BatchEntities_AddRange", report.Results[0].Case)
			assert.Equal(t, "TwoRelation", report.Results[0].Shape)
			assert.Equal(t, 1, report.Results[0].Iterations, "迭代次数小于等于 0 时应当为 1。")
		}
		AssertBenchEmpty(t)
	})

	t.Run("failure", func(t *testing.T) {
		calls := 0
		suite := &Suite{Name: "Test", Cases: []*Case{{
			Suite: "Test", Name: "Failure", Counts: []int{1},
			Body: func(it *Iteration) error {
				calls++
				return errors.New("iteration failed")
			},
		}}}
		report := (&Runner{Iterations: 5}).Run(suite)
		if assert.Len(t, report.Results, 1) {
			assert.True(t, report.Results[0].Failed())
			assert.Contains(t, report.Results[0].Error, "iteration failed")
			assert.Equal(t, 0, report.Results[0].Iterations)
		}
		assert.Equal(t, 1, calls, "失败后不应当重试。")
		assert.Equal(t, 1, report.Failed())
	})
}
