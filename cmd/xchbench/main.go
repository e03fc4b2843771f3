// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

// xchbench pumps rows through a forward exchange flow and reports
// throughput. It is a developer tool for sizing partition counts and
// observing limit behavior, not part of the engine.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/loov/hrtime"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tsurugi.io/jogasaki/pkg/exec"
	"tsurugi.io/jogasaki/pkg/exec/exchange/forward"
	"tsurugi.io/jogasaki/pkg/meta"
	"tsurugi.io/jogasaki/pkg/record"
)

var (
	partitions  int
	rows        int
	limit       int64
	payloadSize int

	rootCmd = &cobra.Command{
		Use:   "xchbench",
		Short: "Benchmark the forward exchange fabric",
		RunE:  run,
	}
)

func init() {
	rootCmd.Flags().IntVar(&partitions, "partitions", runtime.NumCPU(), "number of exchange partitions")
	rootCmd.Flags().IntVar(&rows, "rows", 100000, "rows written per partition")
	rootCmd.Flags().Int64Var(&limit, "limit", -1, "global row limit, negative for unbounded")
	rootCmd.Flags().IntVar(&payloadSize, "payload", 64, "varlen payload bytes per row")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	m := meta.NewRecordMeta(
		[]meta.FieldType{meta.Int8, meta.Character},
		[]bool{false, false},
	)
	info := forward.NewInfo(m)
	if limit >= 0 {
		info = forward.NewInfoWithLimit(m, uint64(limit))
	}
	step := forward.NewStep(info, meta.NewVariableOrder(0, 1))

	rctx := exec.NewRequestContext(logger)
	flow := step.Activate(rctx)
	defer func() { _ = flow.Close() }()

	sinks, sources := flow.SetupPartitions(partitions)
	for _, task := range flow.CreateTasks() {
		if _, err := task.Run(cmd.Context()); err != nil {
			return err
		}
	}

	payload := strings.Repeat("x", payloadSize)
	var drained atomic.Int64

	start := hrtime.Now()
	var group errgroup.Group
	for p := 0; p < partitions; p++ {
		p := p
		group.Go(func() error {
			builder := record.NewBuilder(m)
			defer func() { _ = builder.Close() }()
			writer := sinks.At(p).AcquireWriter()
			for i := 0; i < rows; i++ {
				builder.SetInt8(0, int64(p*rows+i))
				if err := builder.SetCharacter(1, payload); err != nil {
					return err
				}
				rec, err := builder.Finish()
				if err != nil {
					return err
				}
				if _, err := writer.Write(rec); err != nil {
					return err
				}
			}
			writer.Release()
			return nil
		})
		group.Go(func() error {
			reader := sources.At(p).AcquireReader().Reader()
			for {
				if !reader.NextRecord() {
					if !reader.SourceActive() && !reader.Available() {
						return nil
					}
					runtime.Gosched()
					continue
				}
				drained.Inc()
			}
		})
	}
	if err := group.Wait(); err != nil {
		rctx.RaiseError(err)
		return err
	}
	elapsed := hrtime.Since(start)

	written := int64(partitions) * int64(rows)
	logger.Info("bench complete",
		zap.Int("partitions", partitions),
		zap.Int64("rows_written", written),
		zap.Int64("rows_drained", drained.Load()),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rows_per_sec", float64(drained.Load())/elapsed.Seconds()),
	)
	return nil
}
