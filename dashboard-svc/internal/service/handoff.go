package service

import (
	"sort"
	"time"

	"restodash/dashboard-svc/internal/domain"
)

type HandoffMode string

const (
	ModeAI    HandoffMode = "ai"
	ModeStaff HandoffMode = "staff"
)

// handoffWindow is how many recent messages the authorship heuristic looks at.
const handoffWindow = 5

type HandoffState struct {
	Mode         HandoffMode       `json:"mode"`
	LastAuthor   domain.AuthorType `json:"last_author,omitempty"`
	ShowTakeOver bool              `json:"show_take_over"`
	ShowEnableAI bool              `json:"show_enable_ai"`
}

func chronological(messages []domain.ChatMessage) []domain.ChatMessage {
	sorted := append([]domain.ChatMessage(nil), messages...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// OverrideSuperseded reports whether staff wrote after AI was re-enabled at enabledAt.
func OverrideSuperseded(messages []domain.ChatMessage, enabledAt time.Time) bool {
	for _, m := range messages {
		if m.AuthorType == domain.AuthorRestaurant && m.CreatedAt.After(enabledAt) {
			return true
		}
	}
	return false
}

// Handoff derives who currently answers the guest. The newest non-guest message among
// the last five decides; an AI override set at enabledAt wins until staff write again.
func Handoff(messages []domain.ChatMessage, enabledAt *time.Time) HandoffState {
	sorted := chronological(messages)
	if len(sorted) > handoffWindow {
		sorted = sorted[len(sorted)-handoffWindow:]
	}

	state := HandoffState{Mode: ModeAI}
	for i := len(sorted) - 1; i >= 0; i-- {
		author := sorted[i].AuthorType
		if author == domain.AuthorUser {
			continue
		}
		state.LastAuthor = author
		if author == domain.AuthorRestaurant {
			state.Mode = ModeStaff
		}
		break
	}

	if enabledAt != nil && !OverrideSuperseded(messages, *enabledAt) {
		state.Mode = ModeAI
	}

	state.ShowTakeOver = state.Mode == ModeAI
	state.ShowEnableAI = state.Mode == ModeStaff
	return state
}
