package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/reco/embedding"
)

func TestImportAndNearest(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	matrix := filepath.Join(dir, "matrix.csv")
	ids := filepath.Join(dir, "ids.txt")
	db := filepath.Join(dir, "reco.db")
	require.NoError(t, os.WriteFile(matrix, []byte("0,0\n3,4\n1,1\n"), 0o644))
	require.NoError(t, os.WriteFile(ids, []byte("origin\nfar\nnear\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"import", "-db", db, "-matrix", matrix, "-ids", ids}, &out, log))
	assert.Equal(t, "imported 3 artists (2 dimensions)\n", out.String())

	out.Reset()
	require.NoError(t, run(ctx, []string{"nearest", "-db", db, "-k", "2", "0,0"}, &out, log))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0\torigin\t0.000000", lines[0])
	assert.Equal(t, "2\tnear\t1.414214", lines[1])
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	var out bytes.Buffer

	assert.Error(t, run(ctx, nil, &out, log))
	assert.Error(t, run(ctx, []string{"export"}, &out, log))
	assert.Error(t, run(ctx, []string{"import", "-db", filepath.Join(dir, "x.db")}, &out, log))
	err := run(ctx, []string{"import", "-db", filepath.Join(dir, "x.db"), "-matrix", filepath.Join(dir, "none.json"), "-ids", filepath.Join(dir, "none.json")}, &out, log)
	assert.ErrorIs(t, err, embedding.ErrDataLoad)
	assert.Error(t, run(ctx, []string{"nearest", "-db", filepath.Join(dir, "x.db"), "1,abc"}, &out, log))
	assert.Error(t, run(ctx, []string{"nearest", "-db", filepath.Join(dir, "x.db")}, &out, log))
}
