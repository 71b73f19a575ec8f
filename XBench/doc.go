// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
XBench 测量 XTrack 变更追踪和批量保存的性能，实体数量和导航列表数量是两个正交的参数。

功能特性

  - 实体生成：按数量和形态生成确定性的实体，整数列为序号，字符串列为 "<小写字段名>_<序号>"
  - 用例模型：每次迭代使用新的上下文，只对 Body 计时，无论成功与否都会关闭上下文
  - 分批保存：按固定大小切分实体，每个批次使用独立的上下文保存
  - 运行报告：统计最小、平均和最大耗时，支持 table、json 和 yaml 格式

使用手册

1. 参数配置

配置说明：
  - Bench/Batch：分批保存时单个批次的实体数量，默认为 1000
  - Bench/Relations：每个导航列表生成的从属实体数量，默认为 2
  - 数据库通过 XTrack 的 Orm/Source/<数据库类型>/<数据库别名> 配置

2. 套件与用例

  - AddNextEntity/Add：已追踪 N 个实体后再追踪一个实体，覆盖三种形态
  - AutoDetectChangesDisabled/Add_AutoDetectChangesDisabled：关闭自动检测后逐个追踪，开启后检测一次
  - AutoDetectChangesDisabled/AddRange：开启自动检测时批量追踪，之后再检测一次
  - BatchSave/Add_AutoDetectChangesDisabled、AddRange：追踪后一次性保存
  - BatchSave/BatchEntities_*：按 Bench/Batch 分批追踪并保存

3. 基准测试

	func BenchmarkBatchSave(b *testing.B) {
	    for _, c := range XBench.BatchSave().Cases {
	        c.Bench(b, 1000, 10000)
	    }
	}

4. 独立运行

	runner := &XBench.Runner{Iterations: 3, Counts: []int{1000}}
	report := runner.Run(XBench.Suites()...)
	report.Render(os.Stdout, XBench.FormatTable)

注意：
1. 开启自动检测时逐个追踪或批量追踪的耗时都与已追踪的实体数量成正比，大数量的组合耗时较长
2. BatchSave 的清理操作会清空整个数据表，不要指向生产数据库

更多信息请参考模块文档。
*/
package XBench
