// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

// Partition 按 size 切分 items，最后一个批次可能不满，size 小于等于 0 时返回单个批次。
// 返回的批次共享 items 的底层数组。
func Partition[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}
	rets := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		rets = append(rets, items[start:end:end])
	}
	return rets
}
