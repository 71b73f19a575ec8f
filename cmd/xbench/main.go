// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides xbench, the command line driver of the change tracking benchmarks.
package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/beego/beego/v2/client/orm"
	"github.com/dustin/go-humanize"
	"github.com/eframework-org/GO.BENCH/XBench"
	"github.com/eframework-org/GO.BENCH/XTrack"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xbench",
		Short: "Change tracking and batch save benchmarks",
		Long: `Xbench measures how tracking, change detection and batched saves scale
with the number of tracked entities and the depth of their ownership lists.
The database is configured through prefs (Orm/Source/<Type>/<Alias>).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newListCmd(), newRunCmd())

	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List suites, cases and their parameter grids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listSuites(cmd.OutOrStdout(), XBench.Suites())
		},
	}
}

func listSuites(w io.Writer, suites []*XBench.Suite) error {
	for _, suite := range suites {
		if _, err := fmt.Fprintln(w, color.CyanString(suite.Name)); err != nil {
			return err
		}
		for _, c := range suite.Cases {
			counts := make([]string, len(c.Counts))
			for i, count := range c.Counts {
				counts[i] = humanize.Comma(int64(count))
			}
			shapes := make([]string, 0, len(c.Grid()))
			for _, shape := range c.Grid() {
				shapes = append(shapes, shape.String())
			}
			if _, err := fmt.Fprintf(w, "  %-46v N=[%v] shapes=[%v]\n", c.Name,
				strings.Join(counts, " "), strings.Join(shapes, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

type runConfig struct {
	suites     []string
	cases      []string
	counts     []int
	shapes     []string
	iterations int
	batch      int
	relations  int
	relateSet  bool // 是否显式指定了 relations
	sqlite     string
	format     string
}

func newRunCmd() *cobra.Command {
	var cfg runConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suites",
		Long: `Run the selected suites against the configured database and print a
report. Every iteration opens a fresh context, only the body is timed, and
the batch save cases truncate their tables afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.relateSet = cmd.Flags().Changed("relations")
			return runBench(cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&cfg.suites, "suite", nil,
		"Suites to run (default: all)")
	flags.StringSliceVar(&cfg.cases, "case", nil,
		"Cases to run, by name or <suite>/<case> (default: all)")
	flags.IntSliceVar(&cfg.counts, "counts", nil,
		"Entity counts overriding the declared grid (e.g. 1000,10000)")
	flags.StringSliceVar(&cfg.shapes, "shapes", nil,
		"Shapes overriding the declared grid: zero, one, two")
	flags.IntVar(&cfg.iterations, "iterations", 1,
		"Iterations per combination")
	flags.IntVar(&cfg.batch, "batch", 0,
		"Chunk size of the batched save cases (default: prefs Bench/Batch)")
	flags.IntVar(&cfg.relations, "relations", 0,
		"Children per ownership list, at least 1 (default: prefs Bench/Relations)")
	flags.StringVar(&cfg.sqlite, "sqlite", "",
		"SQLite3 file used as the default database when prefs configure none")
	flags.StringVarP(&cfg.format, "format", "f", XBench.FormatTable,
		"Report format: table, json, yaml")

	return cmd
}

func runBench(w io.Writer, cfg runConfig) error {
	if !slices.Contains([]string{XBench.FormatTable, XBench.FormatJson, XBench.FormatYaml}, strings.ToLower(cfg.format)) {
		return errors.Errorf("unknown format %q", cfg.format)
	}

	suites, err := selectSuites(cfg.suites)
	if err != nil {
		return err
	}
	shapes := make([]XBench.Shape, 0, len(cfg.shapes))
	for _, name := range cfg.shapes {
		shape, err := XBench.ParseShape(name)
		if err != nil {
			return err
		}
		shapes = append(shapes, shape)
	}
	for _, count := range cfg.counts {
		if count < 0 {
			return errors.Errorf("invalid entity count %v", count)
		}
	}

	if cfg.batch > 0 {
		XBench.BatchSize(cfg.batch)
	}
	if cfg.relateSet {
		if cfg.relations < 1 {
			return errors.Errorf("invalid relation count %v, ownership lists must not be empty", cfg.relations)
		}
		XBench.RelationCount(cfg.relations)
	}

	if err := setupDatabase(cfg.sqlite); err != nil {
		return err
	}

	runner := &XBench.Runner{
		Iterations: cfg.iterations,
		Counts:     cfg.counts,
		Shapes:     shapes,
		Filter:     caseFilter(cfg.cases),
		Progress: func(result *XBench.Result) {
			if result.Failed() {
				XLog.Warn("xbench: %v/%v(%v, N=%v) failed.", result.Suite, result.Case, result.Shape, result.Count)
			}
		},
	}
	report := runner.Run(suites...)
	if err := report.Render(w, cfg.format); err != nil {
		return err
	}
	if failed := report.Failed(); failed > 0 {
		return errors.Errorf("%v of %v combination(s) failed", failed, len(report.Results))
	}
	return nil
}

func selectSuites(names []string) ([]*XBench.Suite, error) {
	if len(names) == 0 {
		return XBench.Suites(), nil
	}
	suites := make([]*XBench.Suite, 0, len(names))
	for _, name := range names {
		suite := XBench.FindSuite(name)
		if suite == nil {
			return nil, errors.Errorf("unknown suite %q", name)
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func caseFilter(names []string) func(*XBench.Case) bool {
	if len(names) == 0 {
		return nil
	}
	return func(c *XBench.Case) bool {
		for _, name := range names {
			if strings.EqualFold(name, c.Name) || strings.EqualFold(name, c.FullName()) {
				return true
			}
		}
		return false
	}
}

// setupDatabase 在首选项没有配置默认数据库时使用 SQLite3 文件，然后同步数据表。
func setupDatabase(sqlite string) error {
	if _, err := orm.GetDB(XTrack.DefaultAlias); err != nil {
		if sqlite == "" {
			return errors.Errorf("database %v is not configured, set Orm/Source/<Type>/%v in prefs or use --sqlite",
				XTrack.DefaultAlias, XTrack.DefaultAlias)
		}
		XTrack.Setup(XPrefs.New().Set("Orm/Source/SQLite3/"+XTrack.DefaultAlias, XPrefs.New().
			Set("Addr", sqlite).
			Set("Pool", 1).
			Set("Conn", 1)))
	} else if sqlite != "" {
		XLog.Warn("xbench: database %v is configured by prefs, --sqlite is ignored.", XTrack.DefaultAlias)
	}
	return XTrack.Sync()
}
