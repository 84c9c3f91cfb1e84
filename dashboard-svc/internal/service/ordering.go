package service

import (
	"sort"

	"restodash/dashboard-svc/internal/domain"
)

func currentOrder(items []domain.SortItem) []domain.SortItem {
	sorted := append([]domain.SortItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func renumber(items []domain.SortItem) []domain.SortItem {
	for i := range items {
		items[i].SortOrder = i + 1
	}
	return items
}

// Reorder puts the listed ids first, in the given order, followed by the rest in their
// current order, and numbers them from 1. Unknown and repeated ids are ignored.
func Reorder(items []domain.SortItem, orderedIDs []int) []domain.SortItem {
	current := currentOrder(items)
	byID := make(map[int]domain.SortItem, len(current))
	for _, it := range current {
		byID[it.ID] = it
	}

	out := make([]domain.SortItem, 0, len(current))
	placed := map[int]bool{}
	for _, id := range orderedIDs {
		it, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, it)
	}
	for _, it := range current {
		if !placed[it.ID] {
			out = append(out, it)
		}
	}
	return renumber(out)
}

// Move places one item at toIndex (0-based, clamped) and renumbers the list.
func Move(items []domain.SortItem, id, toIndex int) []domain.SortItem {
	current := currentOrder(items)
	from := -1
	for i, it := range current {
		if it.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return renumber(current)
	}

	moved := current[from]
	rest := append(current[:from:from], current[from+1:]...)
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(rest) {
		toIndex = len(rest)
	}

	out := make([]domain.SortItem, 0, len(current))
	out = append(out, rest[:toIndex]...)
	out = append(out, moved)
	out = append(out, rest[toIndex:]...)
	return renumber(out)
}

func TableSortItems(tables []domain.Table) []domain.SortItem {
	items := make([]domain.SortItem, len(tables))
	for i, t := range tables {
		items[i] = domain.SortItem{ID: t.ID, SortOrder: t.SortOrder}
	}
	return items
}

func CategorySortItems(categories []domain.MenuCategory) []domain.SortItem {
	items := make([]domain.SortItem, len(categories))
	for i, c := range categories {
		items[i] = domain.SortItem{ID: c.ID, SortOrder: c.SortOrder}
	}
	return items
}

// QuestionSortItems maps display_order onto SortOrder.
func QuestionSortItems(questions []domain.Question) []domain.SortItem {
	items := make([]domain.SortItem, len(questions))
	for i, q := range questions {
		items[i] = domain.SortItem{ID: q.ID, SortOrder: q.DisplayOrder}
	}
	return items
}
