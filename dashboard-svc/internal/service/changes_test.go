package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"restodash/dashboard-svc/internal/domain"
	"restodash/dashboard-svc/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestChangeService_Record(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := &domain.Session{User: domain.User{ID: 5}, OrganizationID: 2}
	change := Change{
		Action:       domain.EventDeleted,
		Resource:     "table",
		ResourceID:   9,
		RestaurantID: 1,
		Prefixes:     []string{RestaurantPrefix(2, 1)},
	}

	query := mocks.NewQueryServiceInterface(t)
	audit := mocks.NewAuditRepository(t)
	publisher := mocks.NewChangePublisher(t)

	query.On("Invalidate", ctx, change.Prefixes).Once()
	audit.On("RecordAudit", mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.UserID == 5 && e.OrganizationID == 2 && e.Resource == "table" && e.ResourceID == 9
	})).Return(errors.New("db down")).Once()
	publisher.On("PublishChange", ctx, mock.Anything).Run(func(args mock.Arguments) {
		event := args.Get(1).(domain.ChangeEvent)
		assert.Equal(t, domain.EventDeleted, event.Type)
		assert.Equal(t, 1, event.RestaurantID)
		assert.Equal(t, now, event.Timestamp)
	}).Return(nil).Once()

	svc := NewChangeService(query, audit, publisher, discardLogger())
	svc.now = func() time.Time { return now }
	svc.Record(ctx, sess, change)
}
