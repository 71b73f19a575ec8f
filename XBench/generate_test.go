// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	defer RelationCount(defaultRelationCount)

	t.Run("values", func(t *testing.T) {
		entities := Generate[TwoRelation](3)
		if !assert.Len(t, entities, 3) {
			return
		}
		entity := entities[2]
		assert.Equal(t, 0, entity.ID, "主键应当由保存操作分配。")
		assert.Equal(t, 3, entity.Col1)
		assert.Equal(t, 3, entity.Col5)
		assert.Equal(t, "col6_3", entity.Col6)
		assert.Equal(t, "col10_3", entity.Col10)
		assert.False(t, entity.NotMapped)
		assert.Len(t, entity.FirstRelations, RelationCount())
		assert.Len(t, entity.SecondRelations, RelationCount())
		for _, child := range entity.FirstRelations {
			assert.NotNil(t, child)
			assert.Equal(t, 0, child.OwnerID, "从属实体的列应当由保存操作填充。")
			assert.Empty(t, child.Owner)
		}
		assert.NotSame(t, entities[0].FirstRelations[0], entities[1].FirstRelations[0], "从属实体不应当被共享。")
	})

	t.Run("one", func(t *testing.T) {
		entity, ok := GenerateOne(ShapeOne).(*OneRelation)
		if assert.True(t, ok) {
			assert.Equal(t, 1, entity.Col3)
			assert.Equal(t, "col8_1", entity.Col8)
			assert.Len(t, entity.FirstRelations, RelationCount())
		}
	})

	t.Run("negative", func(t *testing.T) {
		assert.Empty(t, Generate[ZeroRelation](-5), "数量小于 0 时应当视为 0。")
		assert.Empty(t, GenerateShape(-1, ShapeTwo))
	})

	t.Run("relation_count", func(t *testing.T) {
		RelationCount(3)
		entity := GenerateOne(ShapeTwo).(*TwoRelation)
		assert.Len(t, entity.FirstRelations, 3)
		assert.Len(t, entity.SecondRelations, 3)

		RelationCount(0)
		entity = Generate[TwoRelation](1)[0]
		assert.Equal(t, 3, RelationCount(), "设置为 0 时应当保留原有的数量。")
		assert.NotEmpty(t, entity.FirstRelations, "导航列表不应当为空。")
		assert.NotEmpty(t, entity.SecondRelations, "导航列表不应当为空。")
	})
}

// TestGenerateProperty 验证生成的实体数量和列值。
func TestGenerateProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("generate returns exactly N sequential entities", prop.ForAll(
		func(count, shapeIndex int) bool {
			shape := Shapes[shapeIndex]
			entities := GenerateShape(count, shape)
			if len(entities) != count {
				return false
			}
			for i, entity := range entities {
				seq := i + 1
				switch e := entity.(type) {
				case *ZeroRelation:
					if shape != ShapeZero || e.ID != 0 || e.Col2 != seq || e.Col7 != fmt.Sprintf("col7_%v", seq) {
						return false
					}
				case *OneRelation:
					if shape != ShapeOne || e.Col4 != seq || len(e.FirstRelations) != RelationCount() {
						return false
					}
				case *TwoRelation:
					if shape != ShapeTwo || e.Col9 != fmt.Sprintf("col9_%v", seq) ||
						len(e.FirstRelations) != RelationCount() || len(e.SecondRelations) != RelationCount() {
						return false
					}
				default:
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 300),
		gen.IntRange(0, len(Shapes)-1),
	))

	properties.TestingRun(t)
}
