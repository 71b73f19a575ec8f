// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import "github.com/prometheus/client_golang/prometheus"

// metricsInfo 定义了全局的统计信息。
type metricsInfo struct {
	tracked *prometheus.CounterVec // 追踪的实体数量，按数据表区分
	detect  prometheus.Counter     // 变更检测的次数
	saved   *prometheus.CounterVec // 写入的记录数量，按数据表和操作区分
	save    prometheus.Histogram   // 保存操作的耗时（秒）
}

var sharedMetrics = &metricsInfo{
	tracked: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xtrack_tracked_total",
		Help: "The total number of entities attached to contexts.",
	}, []string{"table"}),
	detect: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xtrack_detect_total",
		Help: "The total number of change detection passes.",
	}),
	saved: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xtrack_saved_total",
		Help: "The total number of rows written by save operations.",
	}, []string{"table", "action"}),
	save: prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "xtrack_save_seconds",
		Help:    "The duration of save operations in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}),
}

func init() {
	prometheus.MustRegister(sharedMetrics.tracked, sharedMetrics.detect, sharedMetrics.saved, sharedMetrics.save)
}

// Metrics 提供了统计信息的全局访问点。
func Metrics() *metricsInfo {
	return sharedMetrics
}

// Detected 返回变更检测的总次数。
func (mi *metricsInfo) Detected() prometheus.Counter { return mi.detect }

// Tracked 返回指定数据表追踪的实体计数器。
func (mi *metricsInfo) Tracked(table string) prometheus.Counter {
	return mi.tracked.WithLabelValues(table)
}

// Saved 返回指定数据表和操作（create、update）写入的记录计数器。
func (mi *metricsInfo) Saved(table, action string) prometheus.Counter {
	return mi.saved.WithLabelValues(table, action)
}
