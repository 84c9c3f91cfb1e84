package service

import (
	"context"
	"errors"
	"testing"

	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQRGenerator(t *testing.T) {
	g := DefaultQRGenerator{BaseURL: "https://menu.test/"}

	assert.Equal(t, "https://menu.test/r/4/t/9", g.Link(4, 9))
	assert.Equal(t, "https://menu.test/r/4", g.Link(4, 0))

	png, err := g.Generate(4, 9)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestQRService_TableCode(t *testing.T) {
	ctx := context.Background()
	backendPNG := []byte("backend-png")
	cachedPNG := []byte("cached-png")
	localPNG := []byte("local-png")
	unavailable := &apiclient.Error{Kind: apiclient.KindNetwork}

	tests := []struct {
		name         string
		prepareMocks func(backend *mocks.QRBackend, repo *mocks.QRCodeRepository, gen *mocks.QRGenerator)
		want         []byte
		wantErr      bool
	}{
		{
			name: "from_backend",
			prepareMocks: func(backend *mocks.QRBackend, repo *mocks.QRCodeRepository, gen *mocks.QRGenerator) {
				backend.On("TableQRCode", ctx, 1, 7).Return(backendPNG, "image/png", nil).Once()
				repo.On("SaveQRCode", 1, 7, backendPNG).Return(nil).Once()
			},
			want: backendPNG,
		},
		{
			name: "backend_down_uses_cache",
			prepareMocks: func(backend *mocks.QRBackend, repo *mocks.QRCodeRepository, gen *mocks.QRGenerator) {
				backend.On("TableQRCode", ctx, 1, 7).Return(nil, "", unavailable).Once()
				repo.On("GetQRCode", 1, 7).Return(cachedPNG, nil).Once()
			},
			want: cachedPNG,
		},
		{
			name: "non_image_response_regenerates",
			prepareMocks: func(backend *mocks.QRBackend, repo *mocks.QRCodeRepository, gen *mocks.QRGenerator) {
				backend.On("TableQRCode", ctx, 1, 7).Return([]byte("{}"), "application/json", nil).Once()
				repo.On("GetQRCode", 1, 7).Return(nil, nil).Once()
				gen.On("Generate", 1, 7).Return(localPNG, nil).Once()
				repo.On("SaveQRCode", 1, 7, localPNG).Return(errors.New("db down")).Once()
			},
			want: localPNG,
		},
		{
			name: "access_denied",
			prepareMocks: func(backend *mocks.QRBackend, repo *mocks.QRCodeRepository, gen *mocks.QRGenerator) {
				backend.On("TableQRCode", ctx, 1, 7).Return(nil, "", &apiclient.Error{Kind: apiclient.KindForbidden, Status: 403}).Once()
			},
			wantErr: true,
		},
		{
			name: "generation_fails",
			prepareMocks: func(backend *mocks.QRBackend, repo *mocks.QRCodeRepository, gen *mocks.QRGenerator) {
				backend.On("TableQRCode", ctx, 1, 7).Return(nil, "", unavailable).Once()
				repo.On("GetQRCode", 1, 7).Return(nil, errors.New("db down")).Once()
				gen.On("Generate", 1, 7).Return(nil, errors.New("too long")).Once()
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			backend := mocks.NewQRBackend(t)
			repo := mocks.NewQRCodeRepository(t)
			gen := mocks.NewQRGenerator(t)
			testCase.prepareMocks(backend, repo, gen)

			svc := NewQRService(repo, gen, discardLogger())
			got, err := svc.TableCode(ctx, backend, 1, 7)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestQRService_RestaurantCode(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewQRBackend(t)
	repo := mocks.NewQRCodeRepository(t)
	png := []byte("restaurant-png")

	backend.On("RestaurantQRCode", ctx, 4).Return(png, "image/png", nil).Once()
	repo.On("SaveQRCode", 4, 0, png).Return(nil).Once()

	svc := NewQRService(repo, DefaultQRGenerator{}, discardLogger())
	got, err := svc.RestaurantCode(ctx, backend, 4)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestQRService_Forget(t *testing.T) {
	repo := mocks.NewQRCodeRepository(t)
	repo.On("DeleteQRCode", 4, 2).Return(errors.New("db down")).Once()

	NewQRService(repo, DefaultQRGenerator{}, discardLogger()).Forget(4, 2)
}
