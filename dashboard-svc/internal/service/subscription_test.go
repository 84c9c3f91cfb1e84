package service

import (
	"testing"
	"time"

	"restodash/dashboard-svc/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSubscription(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expires    time.Time
		wantDays   int
		wantActive bool
	}{
		{"exact_days", now.Add(72 * time.Hour), 3, true},
		{"partial_day_rounds_up", now.Add(49 * time.Hour), 3, true},
		{"last_hour", now.Add(time.Hour), 1, true},
		{"expired", now.Add(-time.Hour), 0, false},
		{"expires_now", now, 0, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sub := &domain.Subscription{ExpiresAt: testCase.expires}
			DeriveSubscription(sub, now)
			assert.Equal(t, testCase.wantDays, sub.DaysLeft)
			assert.Equal(t, testCase.wantActive, sub.IsActive)
		})
	}
}
