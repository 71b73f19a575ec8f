// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/illumitacit/gostd/quit"
)

// Runner 在 go test 之外运行用例，统计每个组合的耗时。
type Runner struct {
	Iterations int              // 每个组合的迭代次数，小于等于 0 时为 1
	Counts     []int            // 覆盖用例声明的实体数量
	Shapes     []Shape          // 覆盖用例声明的实体形态
	Filter     func(*Case) bool // 用例过滤器，为空时运行所有用例
	Progress   func(*Result)    // 每个组合完成后的回调

	interrupted bool
}

// Run 依次运行套件中的用例，收到退出信号后在当前迭代结束时停止。
func (r *Runner) Run(suites ...*Suite) *Report {
	report := NewReport()
	r.interrupted = false

	quit.GetWaiter().Add(1)
	defer quit.GetWaiter().Done()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sig)

	defer func() { report.Elapsed = time.Since(report.Start) }()

	for _, suite := range suites {
		for _, c := range suite.Cases {
			if r.Filter != nil && !r.Filter(c) {
				continue
			}
			for _, shape := range r.shapes(c) {
				for _, count := range r.counts(c) {
					result := r.measure(c, shape, count, sig)
					if result.Iterations > 0 || result.Error != "" {
						report.Results = append(report.Results, result)
						if r.Progress != nil {
							r.Progress(result)
						}
					}
					if report.Interrupted = r.stopped(sig); report.Interrupted {
						XLog.Notice("XBench.Run: run-%v has been interrupted.", report.ID)
						return report
					}
				}
			}
		}
	}
	return report
}

func (r *Runner) measure(c *Case, shape Shape, count int, sig chan os.Signal) *Result {
	result := &Result{Suite: c.Suite, Case: c.Name, Shape: shape.String(), Count: count}
	iterations := max(r.Iterations, 1)

	var total time.Duration
	for i := 0; i < iterations; i++ {
		if i > 0 && r.stopped(sig) {
			break
		}
		elapsed, err := c.Iterate(count, shape)
		if err != nil {
			result.Error = err.Error()
			XLog.Error("XBench.Run: %v", err)
			break
		}
		if result.Iterations == 0 || elapsed < result.Min {
			result.Min = elapsed
		}
		if elapsed > result.Max {
			result.Max = elapsed
		}
		total += elapsed
		result.Iterations++
	}
	if result.Iterations > 0 {
		result.Mean = total / time.Duration(result.Iterations)
		XLog.Info("XBench.Run: %v(%v, N=%v) mean %v over %v iteration(s).", c.FullName(), shape, count, result.Mean, result.Iterations)
	}
	return result
}

// stopped 检查是否收到了退出信号，收到后保持为 true。
func (r *Runner) stopped(sig chan os.Signal) bool {
	if r.interrupted {
		return true
	}
	select {
	case s := <-sig:
		XLog.Notice("XBench.Run: receive signal of %v.", s.String())
		r.interrupted = true
	case <-quit.GetQuitChannel():
		XLog.Notice("XBench.Run: receive signal of QUIT.")
		r.interrupted = true
	default:
	}
	return r.interrupted
}

func (r *Runner) shapes(c *Case) []Shape {
	if len(r.Shapes) > 0 {
		return r.Shapes
	}
	return c.Grid()
}

func (r *Runner) counts(c *Case) []int {
	if len(r.Counts) > 0 {
		return r.Counts
	}
	return c.Counts
}
