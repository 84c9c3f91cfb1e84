package service

import (
	"math"
	"time"

	"restodash/dashboard-svc/internal/domain"
)

// DeriveSubscription fills DaysLeft and IsActive relative to now.
func DeriveSubscription(sub *domain.Subscription, now time.Time) {
	left := sub.ExpiresAt.Sub(now)
	sub.IsActive = now.Before(sub.ExpiresAt)
	if left <= 0 {
		sub.DaysLeft = 0
		return
	}
	sub.DaysLeft = int(math.Ceil(left.Hours() / 24))
}
