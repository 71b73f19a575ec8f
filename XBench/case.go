// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"fmt"
	"testing"
	"time"

	"github.com/eframework-org/GO.BENCH/XTrack"
	"github.com/pkg/errors"
)

// Iteration 是一次迭代的状态，由 Setup 填充，供 Body 和 Cleanup 使用。
type Iteration struct {
	Ctx      *Context         // 本次迭代的上下文
	Count    int              // 实体数量
	Shape    Shape            // 实体形态
	Entities []XTrack.IEntity // 生成的实体
	Next     XTrack.IEntity   // 待追踪的单个实体
	open     func() *Context  // 上下文的创建函数
}

// Open 打开一个与本次迭代使用相同数据库的新上下文，调用方负责关闭。
func (it *Iteration) Open() *Context { return it.open() }

// Case 是一个基准测试用例。
//
// 每次迭代都会打开一个新的上下文并执行 Setup，只有 Body 被计时，之后执行 Cleanup，
// 无论成功与否上下文都会被关闭。任何阶段的错误都会终止本次迭代并原样返回。
type Case struct {
	Suite   string                    // 所属套件
	Name    string                    // 用例名称
	Counts  []int                     // 实体数量
	Shapes  []Shape                   // 实体形态，为空时只使用 ShapeZero
	Open    func() *Context           // 上下文的创建函数，为空时使用默认数据库
	Setup   func(it *Iteration) error // 准备数据，不计时
	Body    func(it *Iteration) error // 被测量的操作
	Cleanup func(it *Iteration) error // 清理副作用，不计时
}

// FullName 返回 "<套件>/<用例>"。
func (c *Case) FullName() string { return c.Suite + "/" + c.Name }

// Grid 返回用例的实体形态，为空时只使用 ShapeZero。
func (c *Case) Grid() []Shape {
	if len(c.Shapes) == 0 {
		return []Shape{ShapeZero}
	}
	return c.Shapes
}

// Iterate 执行一次迭代，返回 Body 的耗时。
func (c *Case) Iterate(count int, shape Shape) (elapsed time.Duration, err error) {
	it, err := c.begin(count, shape)
	if err != nil {
		return 0, err
	}
	defer func() { err = c.end(it, err) }()

	startTime := time.Now()
	err = c.Body(it)
	elapsed = time.Since(startTime)
	if err != nil {
		return elapsed, errors.Wrapf(err, "XBench.Iterate: %v(%v, N=%v) body", c.FullName(), shape, count)
	}
	return elapsed, nil
}

// Bench 以子测试的方式运行用例的所有形态和数量，计时器只在 Body 期间开启。
func (c *Case) Bench(b *testing.B, counts ...int) {
	if len(counts) == 0 {
		counts = c.Counts
	}
	for _, shape := range c.Grid() {
		for _, count := range counts {
			b.Run(fmt.Sprintf("%v/%v/N=%v", c.Name, shape, count), func(b *testing.B) {
				b.StopTimer()
				for range b.N {
					it, err := c.begin(count, shape)
					if err != nil {
						b.Fatal(err)
					}
					b.StartTimer()
					err = c.Body(it)
					b.StopTimer()
					if err = c.end(it, err); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func (c *Case) begin(count int, shape Shape) (*Iteration, error) {
	open := c.Open
	if open == nil {
		open = func() *Context { return OpenContext() }
	}
	it := &Iteration{Count: count, Shape: shape, open: open}
	it.Ctx = it.Open()
	ok := false
	defer func() {
		if !ok { // Setup 出错或 panic 时关闭上下文
			it.Ctx.Close()
		}
	}()
	if c.Setup != nil {
		if err := c.Setup(it); err != nil {
			return nil, errors.Wrapf(err, "XBench.Iterate: %v(%v, N=%v) setup", c.FullName(), shape, count)
		}
	}
	ok = true
	return it, nil
}

// end 执行清理并关闭上下文，返回最先发生的错误。
func (c *Case) end(it *Iteration, err error) error {
	defer it.Ctx.Close()
	if c.Cleanup != nil {
		if cerr := c.Cleanup(it); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "XBench.Iterate: %v(%v, N=%v) cleanup", c.FullName(), it.Shape, it.Count)
		}
	}
	return err
}
