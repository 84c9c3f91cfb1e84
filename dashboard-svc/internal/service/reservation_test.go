package service

import (
	"testing"
	"time"

	"restodash/dashboard-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-06-01 is a Monday.
func fixtureRestaurant() domain.Restaurant {
	return domain.Restaurant{
		ID: 1,
		WorkingHours: []domain.WorkingHour{
			{DayOfWeek: 0, IsClosed: true},
			{DayOfWeek: 1, OpenTime: "10:00", CloseTime: "14:00"},
			{DayOfWeek: 2, OpenTime: "18:00:00", CloseTime: "00:00:00"},
		},
	}
}

func fixtureTables() []domain.Table {
	return []domain.Table{
		{ID: 3, Name: "Terrace", Capacity: 6, SortOrder: 2},
		{ID: 1, Name: "Window", Capacity: 2, SortOrder: 1},
		{ID: 2, Name: "Hall", Capacity: 4, SortOrder: 1},
	}
}

func TestAvailability(t *testing.T) {
	rest := fixtureRestaurant()
	tables := fixtureTables()

	t.Run("slot_grid", func(t *testing.T) {
		slots, err := Availability("2026-06-01", 2, rest, tables, nil, SlotOptions{})
		require.NoError(t, err)

		starts := make([]string, len(slots))
		for i, s := range slots {
			starts[i] = s.Start
		}
		assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30", "12:00"}, starts)
		assert.Equal(t, "14:00", slots[4].End)
		assert.Equal(t, []int{1, 2, 3}, slots[0].TableIDs)
		assert.True(t, slots[0].Available)
	})

	t.Run("capacity", func(t *testing.T) {
		slots, err := Availability("2026-06-01", 5, rest, tables, nil, SlotOptions{})
		require.NoError(t, err)
		assert.Equal(t, []int{3}, slots[0].TableIDs)
	})

	t.Run("overlap", func(t *testing.T) {
		reservations := []domain.Reservation{
			{TableID: 3, Date: "2026-06-01", StartTime: "11:00", EndTime: "13:00", Status: domain.ReservationConfirmed},
			{TableID: 3, Date: "2026-06-01", StartTime: "10:00", EndTime: "11:00", Status: domain.ReservationCancelled},
			{TableID: 3, Date: "2026-06-02", StartTime: "10:00", EndTime: "12:00", Status: domain.ReservationPending},
		}
		slots, err := Availability("2026-06-01", 5, rest, tables, reservations, SlotOptions{})
		require.NoError(t, err)

		byStart := map[string]Slot{}
		for _, s := range slots {
			byStart[s.Start] = s
		}
		// 10:00-12:00 overlaps 11:00-13:00; a reservation ending at 11:00 would not block
		assert.False(t, byStart["10:00"].Available)
		assert.Empty(t, byStart["10:00"].TableIDs)
		assert.False(t, byStart["12:00"].Available)
		assert.Len(t, slots, 5)
	})

	t.Run("touching_windows", func(t *testing.T) {
		reservations := []domain.Reservation{
			{TableID: 3, Date: "2026-06-01", StartTime: "12:00", EndTime: "14:00", Status: domain.ReservationPending},
		}
		slots, err := Availability("2026-06-01", 5, rest, tables, reservations, SlotOptions{})
		require.NoError(t, err)
		assert.True(t, slots[0].Available, "10:00-12:00 ends when the next one starts")
		assert.False(t, slots[1].Available)
	})

	t.Run("closed_day", func(t *testing.T) {
		slots, err := Availability("2026-05-31", 2, rest, tables, nil, SlotOptions{})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("missing_day", func(t *testing.T) {
		slots, err := Availability("2026-06-03", 2, rest, tables, nil, SlotOptions{})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("closes_at_midnight", func(t *testing.T) {
		slots, err := Availability("2026-06-02", 2, rest, tables, nil, SlotOptions{Step: time.Hour})
		require.NoError(t, err)
		require.Len(t, slots, 5)
		assert.Equal(t, "22:00", slots[4].Start)
		assert.Equal(t, "00:00", slots[4].End)
	})

	t.Run("drops_past_slots_today", func(t *testing.T) {
		now := time.Date(2026, 6, 1, 11, 10, 0, 0, time.UTC)
		slots, err := Availability("2026-06-01", 2, rest, tables, nil, SlotOptions{Now: now})
		require.NoError(t, err)
		require.NotEmpty(t, slots)
		assert.Equal(t, "11:30", slots[0].Start)
	})

	t.Run("invalid_date", func(t *testing.T) {
		_, err := Availability("01.06.2026", 2, rest, tables, nil, SlotOptions{})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestWeekGrid(t *testing.T) {
	weekStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	reservations := []domain.Reservation{
		{ID: 1, TableID: 2, Date: "2026-06-01", StartTime: "19:00", Status: domain.ReservationConfirmed},
		{ID: 2, TableID: 2, Date: "2026-06-01", StartTime: "12:30", Status: domain.ReservationPending},
		{ID: 3, TableID: 2, Date: "2026-06-01", StartTime: "15:00", Status: domain.ReservationCancelled},
		{ID: 4, TableID: 3, Date: "2026-06-07", StartTime: "10:00", Status: domain.ReservationCompleted},
		{ID: 5, TableID: 3, Date: "2026-06-08", StartTime: "10:00", Status: domain.ReservationPending},
		{ID: 6, TableID: 99, Date: "2026-06-02", StartTime: "10:00", Status: domain.ReservationPending},
	}

	grid := WeekGrid(weekStart, fixtureTables(), reservations)

	require.Len(t, grid.Days, 7)
	assert.Equal(t, WeekDay{Date: "2026-06-01", Weekday: 1}, grid.Days[0])
	assert.Equal(t, WeekDay{Date: "2026-06-07", Weekday: 0}, grid.Days[6])

	require.Len(t, grid.Rows, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{grid.Rows[0].Table.ID, grid.Rows[1].Table.ID, grid.Rows[2].Table.ID})

	hall := grid.Rows[1].Cells[0]
	require.Len(t, hall, 2)
	assert.Equal(t, 2, hall[0].ID)
	assert.Equal(t, 1, hall[1].ID)

	terrace := grid.Rows[2]
	require.Len(t, terrace.Cells[6], 1)
	assert.Equal(t, 4, terrace.Cells[6][0].ID)
	for i := 0; i < 6; i++ {
		assert.Empty(t, terrace.Cells[i])
	}
}

func TestTableStatuses(t *testing.T) {
	reservations := []domain.Reservation{
		{ID: 1, TableID: 1, Date: "2026-06-01", StartTime: "12:00", EndTime: "14:00", Status: domain.ReservationConfirmed},
		{ID: 2, TableID: 2, Date: "2026-06-01", StartTime: "18:00", EndTime: "20:00", Status: domain.ReservationPending},
		{ID: 3, TableID: 2, Date: "2026-06-01", StartTime: "16:00", EndTime: "17:00", Status: domain.ReservationPending},
		{ID: 4, TableID: 3, Date: "2026-06-01", StartTime: "12:00", EndTime: "14:00", Status: domain.ReservationCancelled},
		{ID: 5, TableID: 3, Date: "2026-06-02", StartTime: "12:00", EndTime: "14:00", Status: domain.ReservationConfirmed},
	}

	tests := []struct {
		name  string
		now   time.Time
		want  map[int]TableState
		resID map[int]int
	}{
		{
			name:  "lunch",
			now:   time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC),
			want:  map[int]TableState{1: TableOccupied, 2: TableReserved, 3: TableFree},
			resID: map[int]int{1: 1, 2: 3},
		},
		{
			name:  "end_is_exclusive",
			now:   time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC),
			want:  map[int]TableState{1: TableFree, 2: TableReserved, 3: TableFree},
			resID: map[int]int{2: 3},
		},
		{
			name: "late_evening",
			now:  time.Date(2026, 6, 1, 21, 0, 0, 0, time.UTC),
			want: map[int]TableState{1: TableFree, 2: TableFree, 3: TableFree},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			statuses := TableStatuses(testCase.now, fixtureTables(), reservations)
			require.Len(t, statuses, 3)
			for _, s := range statuses {
				assert.Equal(t, testCase.want[s.Table.ID], s.State, "table %d", s.Table.ID)
				if id, ok := testCase.resID[s.Table.ID]; ok {
					require.NotNil(t, s.Reservation)
					assert.Equal(t, id, s.Reservation.ID)
				} else {
					assert.Nil(t, s.Reservation)
				}
			}
		})
	}
}

func TestAllowedTransitions(t *testing.T) {
	assert.Equal(t, []domain.ReservationStatus{domain.ReservationConfirmed, domain.ReservationCancelled},
		AllowedTransitions(domain.ReservationPending))
	assert.Equal(t, []domain.ReservationStatus{domain.ReservationCompleted, domain.ReservationCancelled},
		AllowedTransitions(domain.ReservationConfirmed))
	assert.Empty(t, AllowedTransitions(domain.ReservationCancelled))
	assert.Empty(t, AllowedTransitions(domain.ReservationCompleted))
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, CheckTransition(domain.ReservationPending, domain.ReservationConfirmed))
	assert.NoError(t, CheckTransition(domain.ReservationConfirmed, domain.ReservationCompleted))
	assert.ErrorIs(t, CheckTransition(domain.ReservationPending, domain.ReservationCompleted), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(domain.ReservationCancelled, domain.ReservationConfirmed), ErrInvalidTransition)
	assert.ErrorIs(t, CheckTransition(domain.ReservationCompleted, domain.ReservationCompleted), ErrInvalidTransition)
}
