package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/getforesight/foresight-backend/models"
)

type BlobRepository struct {
	mock.Mock
}

func (m *BlobRepository) GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error) {
	args := m.Called(ctx, bucketUrl, fileName)
	return args.Get(0).(models.Blob), args.Error(1)
}

func (m *BlobRepository) OpenStream(ctx context.Context, bucketUrl, fileName string) (io.WriteCloser, error) {
	args := m.Called(ctx, bucketUrl, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *BlobRepository) GenerateSignedUrl(ctx context.Context, bucketUrl, fileName string) (string, error) {
	args := m.Called(ctx, bucketUrl, fileName)
	return args.String(0), args.Error(1)
}
