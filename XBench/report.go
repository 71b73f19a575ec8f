// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/eframework-org/GO.UTIL/XObject"
	"github.com/eframework-org/GO.UTIL/XString"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJson  = "json"
	FormatYaml  = "yaml"
)

// Result 是一个（用例，形态，数量）组合的统计结果，耗时只包含 Body。
type Result struct {
	Suite      string        `json:"suite" yaml:"suite"`
	Case       string        `json:"case" yaml:"case"`
	Shape      string        `json:"shape" yaml:"shape"`
	Count      int           `json:"count" yaml:"count"`
	Iterations int           `json:"iterations" yaml:"iterations"`
	Min        time.Duration `json:"min" yaml:"min"`
	Mean       time.Duration `json:"mean" yaml:"mean"`
	Max        time.Duration `json:"max" yaml:"max"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed 检查组合是否失败。
func (r *Result) Failed() bool { return !XString.IsEmpty(r.Error) }

// Report 是一次运行的报告。
type Report struct {
	ID          string        `json:"id" yaml:"id"`
	Start       time.Time     `json:"start" yaml:"start"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
	Interrupted bool          `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
	Results     []*Result     `json:"results" yaml:"results"`
}

// NewReport 创建一个新的报告，ID 为随机的 UUID。
func NewReport() *Report {
	return &Report{ID: uuid.NewString(), Start: time.Now(), Results: []*Result{}}
}

// Failed 返回失败的组合数量。
func (r *Report) Failed() int {
	count := 0
	for _, result := range r.Results {
		if result.Failed() {
			count++
		}
	}
	return count
}

// Render 按指定格式输出报告，支持 table、json 和 yaml。
func (r *Report) Render(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		_, err := io.WriteString(w, r.table())
		return err
	case FormatJson:
		data, err := XObject.ToJson(r)
		if err != nil {
			return errors.Wrapf(err, "XBench.Render: run-%v", r.ID)
		}
		_, err = io.WriteString(w, data+"\n")
		return err
	case FormatYaml:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return errors.Wrapf(err, "XBench.Render: run-%v", r.ID)
		}
		return encoder.Close()
	default:
		return errors.Errorf("XBench.Render: unknown format %q", format)
	}
}

func (r *Report) table() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %v started at %v, elapsed %v.\n\n", r.ID, r.Start.Format(time.DateTime), r.Elapsed.Round(time.Millisecond))
	sb.WriteString("| Suite | Case | Shape | N | Iterations | Min | Mean | Max | Error |\n")
	sb.WriteString("|---|---|---|---:|---:|---:|---:|---:|---|\n")
	for _, result := range r.Results {
		errLog := ""
		if result.Failed() {
			errLog = color.RedString(strings.ReplaceAll(result.Error, "|", "\\|"))
		}
		fmt.Fprintf(&sb, "| %v | %v | %v | %v | %v | %v | %v | %v | %v |\n",
			result.Suite, result.Case, result.Shape,
			humanize.Comma(int64(result.Count)),
			result.Iterations,
			formatDuration(result.Min), formatDuration(result.Mean), formatDuration(result.Max),
			errLog)
	}
	if failed := r.Failed(); failed > 0 {
		fmt.Fprintf(&sb, "\n%v of %v combination(s) failed.\n", failed, len(r.Results))
	}
	if r.Interrupted {
		sb.WriteString("\nThe run was interrupted.\n")
	}
	return sb.String()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
