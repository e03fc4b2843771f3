// Copyright (C) 2025 Tsurugi Project.
// See LICENSE for copying information.

package forward_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"tsurugi.io/jogasaki/pkg/meta"
	"tsurugi.io/jogasaki/pkg/record"
)

func testMeta() *meta.RecordMeta {
	return meta.NewRecordMeta(
		[]meta.FieldType{meta.Int8, meta.Character},
		[]bool{false, true},
	)
}

func buildRow(t *testing.T, builder *record.Builder, id int64) record.Ref {
	t.Helper()
	builder.SetInt8(0, id)
	require.NoError(t, builder.SetCharacter(1, fmt.Sprintf("row-%d", id)))
	rec, err := builder.Finish()
	require.NoError(t, err)
	return rec
}
