package service

import (
	"context"
	"fmt"
	"strings"

	"restodash/dashboard-svc/internal/apiclient"

	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(restaurantID, tableID int) ([]byte, error)
}

// DefaultQRGenerator encodes the guest chat link. tableID 0 links the restaurant chat.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(restaurantID, tableID int) string {
	base := strings.TrimRight(g.BaseURL, "/")
	if tableID == 0 {
		return fmt.Sprintf("%s/r/%d", base, restaurantID)
	}
	return fmt.Sprintf("%s/r/%d/t/%d", base, restaurantID, tableID)
}

func (g DefaultQRGenerator) Generate(restaurantID, tableID int) ([]byte, error) {
	return qrcode.Encode(g.Link(restaurantID, tableID), qrcode.Medium, 256)
}

// QRService proxies QR images from the backend and keeps a copy in Postgres. When the
// backend cannot serve one, the cached copy is used, and failing that a locally
// generated code.
type QRService struct {
	repo      QRCodeRepository
	generator QRGenerator
	log       logrus.FieldLogger
}

func NewQRService(repo QRCodeRepository, generator QRGenerator, log logrus.FieldLogger) *QRService {
	return &QRService{repo: repo, generator: generator, log: log.WithField("component", "qrcode")}
}

func (s *QRService) TableCode(ctx context.Context, backend QRBackend, restaurantID, tableID int) ([]byte, error) {
	return s.resolve(restaurantID, tableID, func() ([]byte, string, error) {
		return backend.TableQRCode(ctx, restaurantID, tableID)
	})
}

func (s *QRService) RestaurantCode(ctx context.Context, backend QRBackend, restaurantID int) ([]byte, error) {
	return s.resolve(restaurantID, 0, func() ([]byte, string, error) {
		return backend.RestaurantQRCode(ctx, restaurantID)
	})
}

func (s *QRService) resolve(restaurantID, tableID int, fetch func() ([]byte, string, error)) ([]byte, error) {
	log := s.log.WithFields(logrus.Fields{"restaurant_id": restaurantID, "table_id": tableID})

	image, contentType, err := fetch()
	if err == nil && len(image) > 0 && strings.HasPrefix(contentType, "image/") {
		if err := s.repo.SaveQRCode(restaurantID, tableID, image); err != nil {
			log.WithError(err).Warn("failed to cache QR code")
		}
		return image, nil
	}
	if err != nil {
		switch apiclient.KindOf(err) {
		case apiclient.KindUnauthorized, apiclient.KindForbidden, apiclient.KindNotFound:
			return nil, err
		}
		log.WithError(err).Warn("backend QR code unavailable")
	}

	cached, err := s.repo.GetQRCode(restaurantID, tableID)
	if err != nil {
		log.WithError(err).Warn("failed to read cached QR code")
	}
	if len(cached) > 0 {
		return cached, nil
	}

	image, err = s.generator.Generate(restaurantID, tableID)
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}
	if err := s.repo.SaveQRCode(restaurantID, tableID, image); err != nil {
		log.WithError(err).Warn("failed to cache regenerated QR code")
	}
	return image, nil
}

// Forget drops the cached image of a deleted table.
func (s *QRService) Forget(restaurantID, tableID int) {
	if err := s.repo.DeleteQRCode(restaurantID, tableID); err != nil {
		s.log.WithError(err).WithField("table_id", tableID).Warn("failed to drop cached QR code")
	}
}

var _ QRServiceInterface = (*QRService)(nil)
