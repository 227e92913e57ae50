package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"budget-core/core/storage"
	"budget-core/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "budget").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, client, "budget", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "budget").Return(false, nil)
		client.On("MakeBucket", ctx, "budget", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, client, "budget", "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("check fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "budget").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(ctx, client, "budget", "")
		assert.ErrorContains(t, err, "failed to check bucket budget: denied")
	})
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("GetObject", ctx, "budget", "imports/a.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("date,amount\n")), nil)
	client.On("GetObject", ctx, "budget", "missing.csv", mock.Anything).
		Return(nil, errors.New("not found"))

	data, err := storage.ReadObject(ctx, client, "budget", "imports/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "date,amount\n", string(data))

	_, err = storage.ReadObject(ctx, client, "budget", "missing.csv")
	assert.ErrorContains(t, err, "failed to get object missing.csv")
}

func TestPutJSON(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	var uploaded string
	client.On("PutObject", ctx, "budget", "reports/a.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(3).(io.Reader))
			uploaded = string(data)
		}).
		Return(minio.UploadInfo{}, nil)

	err := storage.PutJSON(ctx, client, "budget", "reports/a.json", map[string]int{"created": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"created": 2}`, uploaded)
}

func TestListKeys(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "imports/b.csv"}
	ch <- minio.ObjectInfo{Key: "imports/notes.txt"}
	ch <- minio.ObjectInfo{Key: "imports/a.csv"}
	close(ch)
	client.On("ListObjects", ctx, "budget", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	keys, err := storage.ListKeys(ctx, client, "budget", "imports/", ".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"imports/a.csv", "imports/b.csv"}, keys)
}
