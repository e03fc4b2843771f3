// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsurugi.io/jogasaki/internal/memory"
)

func TestArena_AllocResolve(t *testing.T) {
	pool := memory.NewPagePool(64, 0)
	arena := memory.NewArena(pool)
	defer func() { require.NoError(t, arena.Close()) }()

	first, firstOff, err := arena.Alloc(16)
	require.NoError(t, err)
	require.Len(t, first, 16)
	copy(first, "0123456789abcdef")

	second, secondOff, err := arena.Alloc(16)
	require.NoError(t, err)
	copy(second, "ghijklmnopqrstuv")

	// chunks resolve back to the same bytes
	assert.Equal(t, []byte("0123456789abcdef"), arena.Resolve(firstOff, 16))
	assert.Equal(t, []byte("ghijklmnopqrstuv"), arena.Resolve(secondOff, 16))

	// earlier chunks stay put when the arena grows a page
	for i := 0; i < 20; i++ {
		_, _, err := arena.Alloc(16)
		require.NoError(t, err)
	}
	assert.Equal(t, []byte("0123456789abcdef"), arena.Resolve(firstOff, 16))
	assert.Equal(t, memory.Size(16*22), arena.Allocated())
}

func TestArena_ZeroAndOversize(t *testing.T) {
	pool := memory.NewPagePool(32, 0)
	arena := memory.NewArena(pool)
	defer func() { require.NoError(t, arena.Close()) }()

	chunk, offset, err := arena.Alloc(0)
	require.NoError(t, err)
	assert.Nil(t, chunk)
	assert.Nil(t, arena.Resolve(offset, 0))

	// larger than a page gets a dedicated chunk
	big, bigOff, err := arena.Alloc(100)
	require.NoError(t, err)
	require.Len(t, big, 100)
	big[99] = 0xff
	assert.Equal(t, byte(0xff), arena.Resolve(bigOff, 100)[99])

	// pool pages were never touched for the oversize chunk
	assert.EqualValues(t, 0, pool.Outstanding())
}

func TestArena_CloseReleasesPages(t *testing.T) {
	pool := memory.NewPagePool(64, 0)
	arena := memory.NewArena(pool)

	for i := 0; i < 10; i++ {
		_, _, err := arena.Alloc(64)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 10, pool.Outstanding())

	require.NoError(t, arena.Close())
	assert.EqualValues(t, 0, pool.Outstanding())

	// close is idempotent, later allocations fail
	require.NoError(t, arena.Close())
	_, _, err := arena.Alloc(8)
	require.Error(t, err)
}

func TestPagePool_Budget(t *testing.T) {
	pool := memory.NewPagePool(64, 2)

	a, err := pool.Acquire()
	require.NoError(t, err)
	_, err = pool.Acquire()
	require.NoError(t, err)

	_, err = pool.Acquire()
	require.Error(t, err)
	require.True(t, memory.Error.Has(err))

	pool.Release(a)
	_, err = pool.Acquire()
	require.NoError(t, err)
}
