package storage

import (
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestAudio(t *testing.T, size int) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "source.mp3")
	payload := make([]byte, size)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	file, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	header := &multipart.FileHeader{
		Filename: "recording.mp3",
		Size:     int64(size),
		Header:   textproto.MIMEHeader{"Content-Type": []string{"audio/mpeg"}},
	}
	return file, header
}

func TestUploadStoreSaveAssignsUniqueIDs(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	fileA, headerA := openTestAudio(t, 128)
	uploadA, err := store.Save(fileA, headerA)
	require.NoError(t, err)

	fileB, headerB := openTestAudio(t, 128)
	uploadB, err := store.Save(fileB, headerB)
	require.NoError(t, err)

	assert.NotEqual(t, uploadA.ID, uploadB.ID)
	assert.NotEqual(t, uploadA.Path, uploadB.Path)
	assert.Equal(t, int64(128), uploadA.Size)
	assert.Equal(t, "audio/mpeg", uploadA.ContentType)

	_, err = os.Stat(uploadA.Path)
	assert.NoError(t, err)
}

func TestUploadStoreRemoveDeletesOnlyThatUpload(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	fileA, headerA := openTestAudio(t, 64)
	uploadA, err := store.Save(fileA, headerA)
	require.NoError(t, err)

	fileB, headerB := openTestAudio(t, 64)
	uploadB, err := store.Save(fileB, headerB)
	require.NoError(t, err)

	require.NoError(t, store.Remove(uploadA))

	_, err = os.Stat(uploadA.Path)
	assert.True(t, os.IsNotExist(err))

	// The concurrent upload survives.
	_, err = os.Stat(uploadB.Path)
	assert.NoError(t, err)
}

func TestUploadStoreRemoveIsIdempotent(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	file, header := openTestAudio(t, 64)
	upload, err := store.Save(file, header)
	require.NoError(t, err)

	require.NoError(t, store.Remove(upload))
	assert.NoError(t, store.Remove(upload))
}

func TestUploadStoreEnforcesSizeLimit(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), 32)
	require.NoError(t, err)

	file, header := openTestAudio(t, 64)
	_, err = store.Save(file, header)
	assert.ErrorContains(t, err, "maximum size")
}
