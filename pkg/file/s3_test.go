package file_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formhandler/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newMockedS3(t *testing.T, client *MockS3Client, opts ...file.S3Option) *file.S3Storage {
	t.Helper()
	opts = append(opts, file.WithS3Client(client))
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
	}, opts...)
	require.NoError(t, err)
	return storage
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("default url", func(t *testing.T) {
		t.Parallel()
		storage := newMockedS3(t, new(MockS3Client))
		assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/a/b.png", storage.URL("/a/b.png"))
	})

	t.Run("endpoint url", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:   "test-bucket",
			Region:   "us-east-1",
			Endpoint: "http://localhost:9000/",
		}, file.WithS3Client(new(MockS3Client)))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/test-bucket/x.txt", storage.URL("x.txt"))
	})

	t.Run("base url", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:  "test-bucket",
			Region:  "us-east-1",
			BaseURL: "https://cdn.example.com",
		}, file.WithS3Client(new(MockS3Client)))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/x.txt", storage.URL("x.txt"))
	})
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	t.Run("successful put", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.PutObjectInput) bool {
				return *params.Bucket == "test-bucket" &&
					*params.Key == "avatars/a.png" &&
					*params.ContentType == "image/png" &&
					aws.ToInt64(params.ContentLength) == 7
			}),
			mock.Anything,
		).Return(&s3.PutObjectOutput{}, nil)

		storage := newMockedS3(t, client)
		stored, err := storage.Put(context.Background(), "/avatars/a.png", bytes.NewReader([]byte("content")), 7, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "a.png", stored.Filename)
		assert.Equal(t, "png", stored.Extension)
		assert.Equal(t, "avatars/a.png", stored.RelativePath)
		assert.Empty(t, stored.AbsolutePath)
		assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/avatars/a.png", stored.URL)

		client.AssertExpectations(t)
	})

	t.Run("default content type", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(params *s3.PutObjectInput) bool {
			return *params.ContentType == "application/octet-stream"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		storage := newMockedS3(t, client)
		_, err := storage.Put(context.Background(), "blob", bytes.NewReader(nil), 0, "")
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("path traversal attempt", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)

		storage := newMockedS3(t, client)
		_, err := storage.Put(context.Background(), "../../../etc/passwd", bytes.NewReader(nil), 0, "")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		client.AssertExpectations(t)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"})

		storage := newMockedS3(t, client)
		_, err := storage.Put(context.Background(), "a.txt", bytes.NewReader(nil), 0, "")
		assert.ErrorIs(t, err, file.ErrAccessDenied)
		client.AssertExpectations(t)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded).
			Run(func(args mock.Arguments) {
				time.Sleep(20 * time.Millisecond)
			})

		storage := newMockedS3(t, client, file.WithS3UploadTimeout(10*time.Millisecond))
		_, err := storage.Put(context.Background(), "a.txt", bytes.NewReader(nil), 0, "")
		assert.ErrorIs(t, err, file.ErrOperationTimeout)
		client.AssertExpectations(t)
	})
}

func TestS3Storage_Delete(t *testing.T) {
	t.Parallel()

	t.Run("existing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(params *s3.DeleteObjectInput) bool {
			return *params.Key == "a.txt"
		}), mock.Anything).Return(&s3.DeleteObjectOutput{}, nil)

		storage := newMockedS3(t, client)
		require.NoError(t, storage.Delete(context.Background(), "a.txt"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist")})

		storage := newMockedS3(t, client)
		err := storage.Delete(context.Background(), "a.txt")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
		client.AssertExpectations(t)
	})

	t.Run("bucket missing", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchBucket{})

		storage := newMockedS3(t, client)
		err := storage.Delete(context.Background(), "a.txt")
		assert.ErrorIs(t, err, file.ErrBucketNotFound)
	})
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()
	client := new(MockS3Client)
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(params *s3.HeadObjectInput) bool {
		return *params.Key == "here.txt"
	}), mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("not found"))

	storage := newMockedS3(t, client)
	assert.True(t, storage.Exists(context.Background(), "here.txt"))
	assert.False(t, storage.Exists(context.Background(), "gone.txt"))
	assert.False(t, storage.Exists(context.Background(), "../here.txt"))
}

func TestStore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "upload", pngContent)

	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(params *s3.PutObjectInput) bool {
		return *params.Key == "img/x.png"
	}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	storage := newMockedS3(t, client)
	stored, err := file.Store(context.Background(), storage, "img/x.png", file.Upload{
		Name:    "me.png",
		TmpName: path,
		Size:    int64(len(pngContent)),
	}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "x.png", stored.Filename)

	_, err = file.Store(context.Background(), storage, "img/y.png", file.Upload{TmpName: filepath.Join(dir, "missing")}, "")
	assert.ErrorIs(t, err, file.ErrFailedToOpenFile)
	client.AssertExpectations(t)
}
