package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files")
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("%PDF-1.4 lecture notes")
	n, err := s.Save(ctx, "abc_notes.pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	_, err = os.Stat(filepath.Join(dir, "abc_notes.pdf.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file must be renamed")

	blob, err := s.Open(ctx, "abc_notes.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(blob.Body)
	require.NoError(t, err)
	require.NoError(t, blob.Body.Close())
	assert.Equal(t, content, got)
	assert.Equal(t, int64(len(content)), blob.Size)

	require.NoError(t, s.Delete(ctx, "abc_notes.pdf"))
	_, err = s.Open(ctx, "abc_notes.pdf")
	require.Error(t, err)

	// 重复删除不报错
	require.NoError(t, s.Delete(ctx, "abc_notes.pdf"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../escape.pdf", "sub/dir.pdf", "", ".hidden"} {
		_, err := s.Save(ctx, key, bytes.NewReader([]byte("x")))
		assert.Error(t, err, key)
		assert.Error(t, s.Delete(ctx, key), key)
	}
}

func TestLocalStorage_List(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Save(ctx, "a.pdf", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	_, err = s.Save(ctx, "b.doc", bytes.NewReader([]byte("b")))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.pdf.tmp"), []byte("c"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o750))

	items, err := s.List(ctx)
	require.NoError(t, err)
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
		assert.False(t, it.ModTime.IsZero())
	}
	assert.ElementsMatch(t, []string{"a.pdf", "b.doc", "c.pdf.tmp"}, keys)
}
