package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"restodash/dashboard-svc/internal/domain"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	DefaultSlotStep     = 30 * time.Minute
	DefaultSlotDuration = 2 * time.Hour
)

var (
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrInvalidDate       = errors.New("invalid date")
)

type SlotOptions struct {
	Step     time.Duration
	Duration time.Duration
	// Now drops slots that already started when it falls on the requested date.
	Now time.Time
}

type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
	TableIDs  []int  `json:"table_ids"`
}

// Weekday returns the working-hours bucket of a date, 0 = Sunday.
func Weekday(t time.Time) int {
	return int(t.Weekday())
}

func WorkingHourFor(rest domain.Restaurant, weekday int) (domain.WorkingHour, bool) {
	for _, wh := range rest.WorkingHours {
		if wh.DayOfWeek == weekday {
			return wh, true
		}
	}
	return domain.WorkingHour{}, false
}

// parseClock returns minutes since midnight for "15:04" or "15:04:05".
func parseClock(value string) (int, error) {
	if len(value) > len(ClockLayout) {
		value = value[:len(ClockLayout)]
	}
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// reservationWindow returns [start, end) in minutes. A missing end time means the
// reservation lasts one slot duration.
func reservationWindow(res domain.Reservation, duration time.Duration) (int, int, bool) {
	start, err := parseClock(res.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err := parseClock(res.EndTime)
	if err != nil || end <= start {
		end = start + int(duration/time.Minute)
	}
	return start, end, true
}

// Blocking reports whether a reservation holds its table.
func Blocking(status domain.ReservationStatus) bool {
	return status == domain.ReservationPending || status == domain.ReservationConfirmed
}

func sortTables(tables []domain.Table) []domain.Table {
	sorted := append([]domain.Table(nil), tables...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Availability lists the bookable slots of a date for a party size.
func Availability(date string, guests int, rest domain.Restaurant, tables []domain.Table, reservations []domain.Reservation, opts SlotOptions) ([]Slot, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if opts.Step <= 0 {
		opts.Step = DefaultSlotStep
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultSlotDuration
	}

	slots := []Slot{}
	wh, ok := WorkingHourFor(rest, Weekday(day))
	if !ok || wh.IsClosed {
		return slots, nil
	}
	open, err := parseClock(wh.OpenTime)
	if err != nil {
		return nil, err
	}
	closing, err := parseClock(wh.CloseTime)
	if err != nil {
		return nil, err
	}
	if closing <= open {
		// closes at or after midnight
		closing += 24 * 60
	}

	earliest := -1
	if !opts.Now.IsZero() && opts.Now.Format(DateLayout) == date {
		earliest = opts.Now.Hour()*60 + opts.Now.Minute()
	}

	type window struct{ start, end int }
	busy := map[int][]window{}
	for _, res := range reservations {
		if res.Date != date || !Blocking(res.Status) {
			continue
		}
		if start, end, ok := reservationWindow(res, opts.Duration); ok {
			busy[res.TableID] = append(busy[res.TableID], window{start, end})
		}
	}

	candidates := []domain.Table{}
	for _, t := range sortTables(tables) {
		if t.Capacity >= guests {
			candidates = append(candidates, t)
		}
	}

	step := int(opts.Step / time.Minute)
	length := int(opts.Duration / time.Minute)
	for start := open; start+length <= closing; start += step {
		if start < earliest {
			continue
		}
		end := start + length
		slot := Slot{Start: formatClock(start % (24 * 60)), End: formatClock(end % (24 * 60)), TableIDs: []int{}}
		for _, t := range candidates {
			free := true
			for _, w := range busy[t.ID] {
				if w.start < end && start < w.end {
					free = false
					break
				}
			}
			if free {
				slot.TableIDs = append(slot.TableIDs, t.ID)
			}
		}
		slot.Available = len(slot.TableIDs) > 0
		slots = append(slots, slot)
	}
	return slots, nil
}

type WeekDay struct {
	Date    string `json:"date"`
	Weekday int    `json:"weekday"`
}

type WeekRow struct {
	Table domain.Table           `json:"table"`
	Cells [][]domain.Reservation `json:"cells"`
}

type WeekGridResult struct {
	Days []WeekDay `json:"days"`
	Rows []WeekRow `json:"rows"`
}

// WeekGrid bins reservations into a table x day grid starting at weekStart.
func WeekGrid(weekStart time.Time, tables []domain.Table, reservations []domain.Reservation) WeekGridResult {
	grid := WeekGridResult{Days: make([]WeekDay, 7)}
	column := map[string]int{}
	for i := 0; i < 7; i++ {
		d := weekStart.AddDate(0, 0, i)
		grid.Days[i] = WeekDay{Date: d.Format(DateLayout), Weekday: Weekday(d)}
		column[grid.Days[i].Date] = i
	}

	rowOf := map[int]int{}
	for _, t := range sortTables(tables) {
		row := WeekRow{Table: t, Cells: make([][]domain.Reservation, 7)}
		for i := range row.Cells {
			row.Cells[i] = []domain.Reservation{}
		}
		rowOf[t.ID] = len(grid.Rows)
		grid.Rows = append(grid.Rows, row)
	}

	for _, res := range reservations {
		if res.Status == domain.ReservationCancelled {
			continue
		}
		col, ok := column[res.Date]
		if !ok {
			continue
		}
		row, ok := rowOf[res.TableID]
		if !ok {
			continue
		}
		grid.Rows[row].Cells[col] = append(grid.Rows[row].Cells[col], res)
	}

	for _, row := range grid.Rows {
		for _, cell := range row.Cells {
			sort.SliceStable(cell, func(i, j int) bool {
				return clockKey(cell[i].StartTime) < clockKey(cell[j].StartTime)
			})
		}
	}
	return grid
}

func clockKey(value string) int {
	m, err := parseClock(value)
	if err != nil {
		return 24 * 60
	}
	return m
}

type TableState string

const (
	TableFree     TableState = "free"
	TableReserved TableState = "reserved"
	TableOccupied TableState = "occupied"
)

type TableStatus struct {
	Table       domain.Table        `json:"table"`
	State       TableState          `json:"state"`
	Reservation *domain.Reservation `json:"reservation,omitempty"`
}

// TableStatuses reports what each table looks like at now.
func TableStatuses(now time.Time, tables []domain.Table, reservations []domain.Reservation) []TableStatus {
	today := now.Format(DateLayout)
	minute := now.Hour()*60 + now.Minute()

	byTable := map[int][]domain.Reservation{}
	for _, res := range reservations {
		if res.Date == today && Blocking(res.Status) {
			byTable[res.TableID] = append(byTable[res.TableID], res)
		}
	}

	statuses := []TableStatus{}
	for _, t := range sortTables(tables) {
		status := TableStatus{Table: t, State: TableFree}
		nextStart := -1
		for _, res := range byTable[t.ID] {
			start, end, ok := reservationWindow(res, DefaultSlotDuration)
			if !ok {
				continue
			}
			res := res
			if start <= minute && minute < end {
				status.State = TableOccupied
				status.Reservation = &res
				break
			}
			if start > minute && (nextStart < 0 || start < nextStart) {
				nextStart = start
				status.State = TableReserved
				status.Reservation = &res
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

var transitions = map[domain.ReservationStatus][]domain.ReservationStatus{
	domain.ReservationPending:   {domain.ReservationConfirmed, domain.ReservationCancelled},
	domain.ReservationConfirmed: {domain.ReservationCompleted, domain.ReservationCancelled},
}

// AllowedTransitions lists the statuses a reservation can move to. Terminal statuses
// return an empty list.
func AllowedTransitions(status domain.ReservationStatus) []domain.ReservationStatus {
	return append([]domain.ReservationStatus{}, transitions[status]...)
}

func CheckTransition(from, to domain.ReservationStatus) error {
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func ParseReservationStatus(value string) (domain.ReservationStatus, bool) {
	s := domain.ReservationStatus(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case domain.ReservationPending, domain.ReservationConfirmed, domain.ReservationCancelled, domain.ReservationCompleted:
		return s, true
	}
	return "", false
}
