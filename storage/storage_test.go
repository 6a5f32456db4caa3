package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeyLayout(t *testing.T) {
	now := time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)
	key := ObjectKey("user-1", "papers", "Draft.PDF", now)

	parts := strings.Split(key, "/")
	require.Len(t, parts, 7)
	assert.Equal(t, []string{"users", "user-1", "papers", "2025", "04", "09"}, parts[:6])
	assert.True(t, strings.HasSuffix(parts[6], ".pdf"))

	assert.NotEqual(t, key, ObjectKey("user-1", "papers", "Draft.PDF", now))
}

func TestObjectKeySanitizesSegments(t *testing.T) {
	key := ObjectKey("../evil", "", "x.png", time.Now())
	assert.NotContains(t, key, "..")
	assert.True(t, strings.HasPrefix(key, "users/__evil/_/"), key)
}

func TestLocalStoreSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	body := []byte("%PDF-1.4 test")
	stored, err := store.Save(context.Background(), "users/u1/papers/2025/01/01/a.pdf", "application/pdf", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, "users/u1/papers/2025/01/01/a.pdf", stored)

	onDisk, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Equal(t, body, onDisk)

	require.NoError(t, store.Remove(context.Background(), stored))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(stored)))
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	require.NoError(t, store.Remove(context.Background(), stored))
}

func TestLocalStoreRejectsShortWrites(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "users/u1/a.png", "image/png", strings.NewReader("abc"), 10)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "users", "u1", "a.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStoreRefusesEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../outside.txt", "text/plain", strings.NewReader("x"), 1)
	assert.Error(t, err)
	assert.Error(t, store.Remove(context.Background(), "/etc/passwd"))
}

func TestLocalStoreDoesNotOverwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "k.pdf", "application/pdf", strings.NewReader("a"), 1)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "k.pdf", "application/pdf", strings.NewReader("b"), 1)
	assert.Error(t, err)
}

type fakeObjects struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted string
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreSave(t *testing.T) {
	api := &fakeObjects{}
	store := &S3Store{client: api, bucket: "portal"}

	key, err := store.Save(context.Background(), "users/u1/slip.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	assert.Equal(t, "users/u1/slip.png", key)
	assert.Equal(t, "portal", aws.ToString(api.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(api.put.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(api.put.ContentLength))
	assert.Equal(t, []byte("png"), api.body)

	require.NoError(t, store.Remove(context.Background(), key))
	assert.Equal(t, key, api.deleted)
}

func TestS3StoreWrapsErrors(t *testing.T) {
	boom := errors.New("access denied")
	store := &S3Store{client: &fakeObjects{err: boom}, bucket: "portal"}

	_, err := store.Save(context.Background(), "k", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Remove(context.Background(), "k"), boom)
}
