package imagestore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaceTNT/office-map/internal/imagestore"
)

func newFs(t *testing.T) (imagestore.Store, string) {
	t.Helper()

	dir := t.TempDir()
	s, err := imagestore.New(context.Background(), imagestore.DriverFilesystem, imagestore.Config{
		Dir:          dir,
		PublicPrefix: "/uploads",
		MaxBytes:     1024,
	})
	require.NoError(t, err)

	return s, dir
}

func TestFsSaveAndRemove(t *testing.T) {
	s, dir := newFs(t)
	ctx := context.Background()

	data := []byte("fake png bytes")
	url, err := s.Save(ctx, "Floor Plan.PNG", int64(len(data)), strings.NewReader(string(data)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"), "url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension lowercased, url %q", url)

	name := strings.TrimPrefix(url, "/uploads/")
	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	// names are opaque, two saves of the same file never collide
	url2, err := s.Save(ctx, "Floor Plan.PNG", int64(len(data)), strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.NotEqual(t, url, url2)

	require.NoError(t, s.Remove(ctx, name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestRejectsBadUploads(t *testing.T) {
	s, _ := newFs(t)
	ctx := context.Background()

	t.Run("unsupported_extension", func(t *testing.T) {
		_, err := s.Save(ctx, "plan.gif", 10, strings.NewReader("0123456789"))
		var utErr imagestore.UnsupportedTypeError
		assert.ErrorAs(t, err, &utErr)
		assert.Equal(t, ".gif", utErr.Ext)
	})

	t.Run("no_extension", func(t *testing.T) {
		_, err := s.Save(ctx, "plan", 10, strings.NewReader("0123456789"))
		var utErr imagestore.UnsupportedTypeError
		assert.ErrorAs(t, err, &utErr)
	})

	t.Run("oversize", func(t *testing.T) {
		_, err := s.Save(ctx, "plan.jpg", 2048, strings.NewReader("x"))
		var tlErr imagestore.TooLargeError
		assert.ErrorAs(t, err, &tlErr)
		assert.Equal(t, int64(2048), tlErr.Size)
		assert.Equal(t, int64(1024), tlErr.Limit)
	})
}

func TestMemoryStore(t *testing.T) {
	s := imagestore.NewMemoryStore(1024)
	ctx := context.Background()

	url, err := s.Save(ctx, "pic.jpeg", 4, strings.NewReader("data"))
	require.NoError(t, err)

	data, ok := s.Get(url)
	require.True(t, ok)
	assert.Equal(t, []byte("data"), data)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Remove(ctx, url))
	assert.Equal(t, 0, s.Len())
	assert.Error(t, s.Remove(ctx, url))
}

func TestUnknownDriver(t *testing.T) {
	_, err := imagestore.New(context.Background(), imagestore.Driver("ftp"), imagestore.Config{})
	assert.Error(t, err)
}
