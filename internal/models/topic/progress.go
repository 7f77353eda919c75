package topic

import (
	"fmt"
	"sort"
)

type SortOrder string

const SortDefault SortOrder = "default"
const SortCompletionAsc SortOrder = "completion-asc"
const SortCompletionDesc SortOrder = "completion-desc"

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortDefault:
		return SortDefault, nil
	case SortCompletionAsc:
		return SortCompletionAsc, nil
	case SortCompletionDesc:
		return SortCompletionDesc, nil
	default:
		return "", fmt.Errorf("неизвестный порядок сортировки %q", s)
	}
}

// Percent = round(100*completed/total) с округлением половины вверх
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

// Sort возвращает новый срез; при равенстве сохраняется исходный порядок
func Sort(topics []*Topic, order SortOrder) []*Topic {
	res := make([]*Topic, len(topics))
	copy(res, topics)

	switch order {
	case SortCompletionAsc:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].Progress() < res[j].Progress()
		})
	case SortCompletionDesc:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].Progress() > res[j].Progress()
		})
	}
	return res
}
