package service

import (
	"context"
	"time"

	"restodash/dashboard-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

// Change describes one successful mutation.
type Change struct {
	Action       string
	Resource     string
	ResourceID   int
	RestaurantID int
	Prefixes     []string
}

// ChangeService runs the after-mutation steps: invalidate cache, audit, fan out.
type ChangeService struct {
	query     QueryServiceInterface
	audit     AuditRepository
	publisher ChangePublisher
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewChangeService(query QueryServiceInterface, audit AuditRepository, publisher ChangePublisher, log logrus.FieldLogger) *ChangeService {
	return &ChangeService{
		query:     query,
		audit:     audit,
		publisher: publisher,
		log:       log.WithField("component", "changes"),
		now:       time.Now,
	}
}

// Record never fails the request; the mutation already happened in the backend.
func (s *ChangeService) Record(ctx context.Context, sess *domain.Session, change Change) {
	s.query.Invalidate(ctx, change.Prefixes...)

	log := s.log.WithFields(logrus.Fields{
		"action":      change.Action,
		"resource":    change.Resource,
		"resource_id": change.ResourceID,
		"user_id":     sess.User.ID,
	})

	entry := &domain.AuditEntry{
		UserID:         sess.User.ID,
		OrganizationID: sess.OrganizationID,
		Action:         change.Action,
		Resource:       change.Resource,
		ResourceID:     change.ResourceID,
	}
	if err := s.audit.RecordAudit(entry); err != nil {
		log.WithError(err).Warn("failed to record audit entry")
	}

	event := domain.ChangeEvent{
		Type:           change.Action,
		OrganizationID: sess.OrganizationID,
		RestaurantID:   change.RestaurantID,
		Resource:       change.Resource,
		ResourceID:     change.ResourceID,
		Prefixes:       change.Prefixes,
		Timestamp:      s.now(),
	}
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		log.WithError(err).Warn("failed to publish change event")
		return
	}
	log.Debug("change recorded")
}

var _ ChangeServiceInterface = (*ChangeService)(nil)
