// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"strings"

	"github.com/eframework-org/GO.BENCH/XTrack"
)

const (
	SuiteAddNextEntity             = "AddNextEntity"
	SuiteAutoDetectChangesDisabled = "AutoDetectChangesDisabled"
	SuiteBatchSave                 = "BatchSave"
)

// Suite 是一组共享实体数量和准备方式的用例。
type Suite struct {
	Name  string
	Cases []*Case
}

// Case 按名称查找用例（不区分大小写）。
func (s *Suite) Case(name string) *Case {
	for _, c := range s.Cases {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// Suites 返回所有的套件，每次调用都会创建新的实例。
func Suites() []*Suite {
	return []*Suite{AddNextEntity(), AutoDetectChangesDisabled(), BatchSave()}
}

// FindSuite 按名称查找套件（不区分大小写）。
func FindSuite(name string) *Suite {
	for _, s := range Suites() {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// AddNextEntity 测量在已追踪 N 个实体的上下文中再追踪一个实体的耗时。
func AddNextEntity() *Suite {
	return &Suite{Name: SuiteAddNextEntity, Cases: []*Case{
		{
			Suite:  SuiteAddNextEntity,
			Name:   "Add",
			Counts: []int{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000},
			Shapes: Shapes,
			Setup: func(it *Iteration) error {
				var err error
				switch it.Shape {
				case ShapeOne:
					err = it.Ctx.OneRelations.AddRange(Generate[OneRelation](it.Count))
				case ShapeTwo:
					err = it.Ctx.TwoRelations.AddRange(Generate[TwoRelation](it.Count))
				default:
					err = it.Ctx.ZeroRelations.AddRange(Generate[ZeroRelation](it.Count))
				}
				if err != nil {
					return err
				}
				if err := it.Ctx.DetectChanges(); err != nil {
					return err
				}
				it.Next = GenerateOne(it.Shape)
				return nil
			},
			Body: func(it *Iteration) error {
				return it.Ctx.Add(it.Next)
			},
		},
	}}
}

// AutoDetectChangesDisabled 对比关闭自动检测后逐个追踪与批量追踪的耗时。
func AutoDetectChangesDisabled() *Suite {
	counts := []int{1_000, 10_000, 100_000, 1_000_000}
	return &Suite{Name: SuiteAutoDetectChangesDisabled, Cases: []*Case{
		{
			Suite:  SuiteAutoDetectChangesDisabled,
			Name:   "Add_AutoDetectChangesDisabled",
			Counts: counts,
			Setup:  setupEntities,
			Body: func(it *Iteration) error {
				if err := addToggled(it.Ctx, it.Entities); err != nil {
					return err
				}
				return it.Ctx.DetectChanges()
			},
		},
		{
			Suite:  SuiteAutoDetectChangesDisabled,
			Name:   "AddRange",
			Counts: counts,
			Setup:  setupEntities,
			Body: func(it *Iteration) error {
				if err := it.Ctx.AddRange(it.Entities); err != nil {
					return err
				}
				return it.Ctx.DetectChanges()
			},
		},
	}}
}

// BatchSave 对比一次性保存与按 BatchSize 分批（每批使用独立的上下文）保存的耗时。
func BatchSave() *Suite {
	counts := []int{1_000, 10_000, 100_000}
	cleanup := func(it *Iteration) error {
		_, err := it.Ctx.TruncateOf(it.Shape)
		return err
	}
	newCase := func(name string, body func(it *Iteration) error) *Case {
		return &Case{Suite: SuiteBatchSave, Name: name, Counts: counts, Setup: setupEntities, Body: body, Cleanup: cleanup}
	}
	return &Suite{Name: SuiteBatchSave, Cases: []*Case{
		newCase("Add_AutoDetectChangesDisabled", func(it *Iteration) error {
			if err := addToggled(it.Ctx, it.Entities); err != nil {
				return err
			}
			_, err := it.Ctx.SaveChanges()
			return err
		}),
		newCase("AddRange", func(it *Iteration) error {
			if err := it.Ctx.AddRange(it.Entities); err != nil {
				return err
			}
			_, err := it.Ctx.SaveChanges()
			return err
		}),
		newCase("BatchEntities_Add", func(it *Iteration) error {
			return saveInBatches(it, addEach)
		}),
		newCase("BatchEntities_Add_AutoDetectChangesDisabled", func(it *Iteration) error {
			return saveInBatches(it, addToggled)
		}),
		newCase("BatchEntities_AddRange", func(it *Iteration) error {
			return saveInBatches(it, func(ctx *Context, batch []XTrack.IEntity) error {
				return ctx.AddRange(batch)
			})
		}),
	}}
}

func setupEntities(it *Iteration) error {
	it.Entities = GenerateShape(it.Count, it.Shape)
	return nil
}

func addEach(ctx *Context, entities []XTrack.IEntity) error {
	for _, entity := range entities {
		if err := ctx.Add(entity); err != nil {
			return err
		}
	}
	return nil
}

// addToggled 关闭自动检测后逐个追踪，结束后重新开启自动检测。
func addToggled(ctx *Context, entities []XTrack.IEntity) error {
	ctx.AutoDetectChanges(false)
	if err := addEach(ctx, entities); err != nil {
		return err
	}
	ctx.AutoDetectChanges(true)
	return nil
}

// saveInBatches 按 BatchSize 切分实体，每个批次在独立的上下文中追踪并保存。
func saveInBatches(it *Iteration, track func(ctx *Context, batch []XTrack.IEntity) error) error {
	for _, batch := range Partition(it.Entities, BatchSize()) {
		err := func() error {
			ctx := it.Open()
			defer ctx.Close()
			if err := track(ctx, batch); err != nil {
				return err
			}
			_, err := ctx.SaveChanges()
			return err
		}()
		if err != nil {
			return err
		}
	}
	return nil
}
