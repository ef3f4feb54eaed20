package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStore_PutGetDelete(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("fake-jpeg-bytes")

	require.NoError(t, store.Put(ctx, "scans/scan-1.jpg", data, "image/jpeg"))

	got, err := store.Get(ctx, "scans/scan-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// 覆盖写
	require.NoError(t, store.Put(ctx, "scans/scan-1.jpg", []byte("v2"), "image/jpeg"))
	got, err = store.Get(ctx, "scans/scan-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, store.Delete(ctx, "scans/scan-1.jpg"))
	_, err = store.Get(ctx, "scans/scan-1.jpg")
	assert.ErrorContains(t, err, "image not found")

	// 删除不存在的 key 视为成功
	assert.NoError(t, store.Delete(ctx, "scans/scan-1.jpg"))
}

func TestFilesystemStore_GetMissing(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "scans/nope.jpg")
	assert.ErrorContains(t, err, "image not found")
}

func TestFilesystemStore_RejectsUnsafeKeys(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystemStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"", "../escape.jpg", "/etc/passwd", "a/../../escape.jpg"} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, store.Put(ctx, key, []byte("x"), "image/jpeg"))
			_, err := store.Get(ctx, key)
			assert.Error(t, err)
		})
	}

	// 根目录之外不应出现任何文件
	entries, err := os.ReadDir(filepath.Dir(root))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "escape.jpg", e.Name())
	}
}

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "scans/scan-1.png", []byte("png-bytes"), "image/png"))

	got, err := store.Get(ctx, "scans/scan-1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), got)

	// 返回的是副本,改写不影响存储内容
	got[0] = 'X'
	again, err := store.Get(ctx, "scans/scan-1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), again)

	require.NoError(t, store.Delete(ctx, "scans/scan-1.png"))
	_, err = store.Get(ctx, "scans/scan-1.png")
	assert.Error(t, err)
}

func TestNew_DriverSelection(t *testing.T) {
	ctx := context.Background()

	fsStore, err := New(ctx, Config{Driver: string(DriverFilesystem), RootDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FilesystemStore{}, fsStore)

	memStore, err := New(ctx, Config{Driver: string(DriverMemory)})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, memStore)

	_, err = New(ctx, Config{Driver: "ftp"})
	assert.Error(t, err)
}
