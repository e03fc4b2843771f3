// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tsurugi.io/jogasaki/internal/memory"
	"tsurugi.io/jogasaki/pkg/exec"
	"tsurugi.io/jogasaki/pkg/exec/exchange/forward"
	"tsurugi.io/jogasaki/pkg/meta"
	"tsurugi.io/jogasaki/pkg/record"
)

func TestWriter_LimitAcrossPartitions(t *testing.T) {
	m := testMeta()
	step := forward.NewStep(forward.NewInfoWithLimit(m, 3), meta.NewVariableOrder(0, 1))
	rctx := exec.NewRequestContext(zaptest.NewLogger(t))
	flow := step.Activate(rctx)
	defer func() { require.NoError(t, flow.Close()) }()

	sinks, sources := flow.SetupPartitions(2)
	builder := record.NewBuilder(m)
	defer func() { require.NoError(t, builder.Close()) }()

	// each writer attempts four pushes; every call reports accepted
	for i := 0; i < sinks.Len(); i++ {
		writer := sinks.At(i).AcquireWriter()
		for j := int64(0); j < 4; j++ {
			accepted, err := writer.Write(buildRow(t, builder, j))
			require.NoError(t, err)
			require.True(t, accepted)
		}
		writer.Release()
	}

	// exactly the limit drains, across both partitions combined
	drained := 0
	for i := 0; i < sources.Len(); i++ {
		reader := sources.At(i).AcquireReader().Reader()
		for reader.NextRecord() {
			drained++
		}
		require.False(t, reader.SourceActive())
	}
	assert.Equal(t, 3, drained)
}

func TestWriter_LimitZeroShortCircuits(t *testing.T) {
	m := testMeta()
	step := forward.NewStep(forward.NewInfoWithLimit(m, 0), meta.NewVariableOrder(0, 1))
	flow := step.Activate(exec.NewRequestContext(zaptest.NewLogger(t)))
	defer func() { require.NoError(t, flow.Close()) }()

	sinks, sources := flow.SetupPartitions(1)
	builder := record.NewBuilder(m)
	defer func() { require.NoError(t, builder.Close()) }()

	writer := sinks.At(0).AcquireWriter()
	for j := int64(0); j < 5; j++ {
		accepted, err := writer.Write(buildRow(t, builder, j))
		require.NoError(t, err)
		require.True(t, accepted)
	}
	writer.Release()

	reader := sources.At(0).AcquireReader().Reader()
	require.False(t, reader.NextRecord())
	require.False(t, reader.Available())
	require.False(t, reader.SourceActive())
}

func TestWriter_NoLimitPushesEverything(t *testing.T) {
	m := testMeta()
	partition := forward.NewInputPartition(nil, nil, forward.NewInfo(m))
	defer func() { require.NoError(t, partition.Close()) }()
	sink := forward.NewSink(forward.NewInfo(m), exec.NewRequestContext(nil), nil, partition)

	builder := record.NewBuilder(m)
	defer func() { require.NoError(t, builder.Close()) }()

	writer := sink.AcquireWriter()
	for j := int64(0); j < 100; j++ {
		accepted, err := writer.Write(buildRow(t, builder, j))
		require.NoError(t, err)
		require.True(t, accepted)
	}
	assert.Equal(t, 100, partition.Count())
}

func TestWriter_AllocationFailurePropagates(t *testing.T) {
	m := testMeta()
	pool := memory.NewPagePool(memory.Size(m.RecordSize()), 1)
	info := forward.NewInfo(m)
	partition := forward.NewInputPartition(memory.NewArena(pool), memory.NewArena(pool), info)
	defer func() { require.NoError(t, partition.Close()) }()
	sink := forward.NewSink(info, exec.NewRequestContext(nil), nil, partition)

	builder := record.NewBuilder(m)
	defer func() { require.NoError(t, builder.Close()) }()

	writer := sink.AcquireWriter()
	_, err := writer.Write(buildRow(t, builder, 1))
	require.Error(t, err)
	require.True(t, forward.Error.Has(err))
	require.True(t, memory.Error.Has(err))
}

func TestWriter_FlushIsNoop(t *testing.T) {
	m := testMeta()
	partition := forward.NewInputPartition(nil, nil, forward.NewInfo(m))
	defer func() { require.NoError(t, partition.Close()) }()
	sink := forward.NewSink(forward.NewInfo(m), exec.NewRequestContext(nil), nil, partition)

	writer := sink.AcquireWriter()
	require.NoError(t, writer.Flush())
}
