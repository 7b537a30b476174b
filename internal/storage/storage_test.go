package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumequiz/internal/config"
)

func TestLocalStorageSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "cv.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cv.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestLocalStorageLastWriteWins(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "cv.docx", strings.NewReader("old"))
	require.NoError(t, err)
	path, err := store.Save(context.Background(), "cv.docx", strings.NewReader("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorageStripsDirectories(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../../etc/cv.pdf", "/abs/cv.pdf", `dir\cv.pdf`} {
		path, err := store.Save(context.Background(), name, strings.NewReader("x"))
		require.NoError(t, err, name)
		assert.Equal(t, store.Dir(), filepath.Dir(path), name)
	}
}

func TestLocalStorageInvalidFilename(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "/", ".."} {
		_, err := store.Save(context.Background(), name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidFilename, name)
	}
}

type fakePutter struct {
	bucket string
	key    string
	ctype  string
	body   string
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	f.ctype = aws.ToString(params.ContentType)
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

func TestS3ArchiverArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))

	putter := &fakePutter{}
	archiver := newS3Archiver(putter, "bucket", "resumes/")
	require.NoError(t, archiver.Archive(context.Background(), path))

	assert.Equal(t, "bucket", putter.bucket)
	assert.Equal(t, "resumes/cv.pdf", putter.key)
	assert.Equal(t, "application/pdf", putter.ctype)
	assert.Equal(t, "%PDF", putter.body)
}

func TestS3ArchiverErrors(t *testing.T) {
	archiver := newS3Archiver(&fakePutter{}, "bucket", "")
	assert.Error(t, archiver.Archive(context.Background(), filepath.Join(t.TempDir(), "missing.pdf")))

	path := filepath.Join(t.TempDir(), "cv.docx")
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0o644))
	failing := newS3Archiver(&fakePutter{err: errors.New("access denied")}, "bucket", "")
	err := failing.Archive(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewArchiverWithoutBucket(t *testing.T) {
	archiver, err := NewArchiver(context.Background(), config.StorageConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopArchiver{}, archiver)
	assert.NoError(t, archiver.Archive(context.Background(), "anything"))
}
