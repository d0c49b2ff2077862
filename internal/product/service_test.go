package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/acuenca/tienda/internal/product"
)

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *product.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Unreferenced",
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().CountDetailReferences(gomock.Any(), int64(1)).Return(0, nil)
				m.EXPECT().DeleteProduct(gomock.Any(), int64(1)).Return(nil)
			},
		},
		{
			name: "Referenced",
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().CountDetailReferences(gomock.Any(), int64(1)).Return(3, nil)
			},
			wantErr: product.ErrReferenced,
		},
		{
			name: "NotFound",
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().CountDetailReferences(gomock.Any(), int64(1)).Return(0, nil)
				m.EXPECT().DeleteProduct(gomock.Any(), int64(1)).Return(product.ErrNotFound)
			},
			wantErr: product.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := product.NewService(repo)
			err := svc.Delete(context.Background(), 1)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Delete_CountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	repo.EXPECT().CountDetailReferences(gomock.Any(), int64(1)).Return(0, errors.New("db error"))

	svc := product.NewService(repo)
	err := svc.Delete(context.Background(), 1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, product.ErrReferenced)
}
