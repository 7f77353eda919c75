package task

import (
	"sort"
	"strings"
)

type Summary struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	InProgress        int `json:"inProgress"`
	Pending           int `json:"pending"`
	CompletionPercent int `json:"completionPercent"`
	ProgressPercent   int `json:"progressPercent"`
}

type CategorySummary struct {
	Category Category `json:"category"`
	Summary
}

type Report struct {
	Overall    Summary           `json:"overall"`
	Categories []CategorySummary `json:"categories"`
}

// Summarize считает прогресс набора задач; задачи "в работе" дают половину
func Summarize(tasks []*Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		default:
			s.Pending++
		}
	}

	if s.Total == 0 {
		return s
	}
	s.CompletionPercent = roundHalfUp(100*s.Completed, s.Total)
	// 100*(c + 0.5*ip)/t = (200*c + 100*ip) / (2*t)
	s.ProgressPercent = roundHalfUp(200*s.Completed+100*s.InProgress, 2*s.Total)
	return s
}

// SummarizeByCategory - категории с задачами идут первыми, дальше по имени
func SummarizeByCategory(tasks []*Task) []CategorySummary {
	grouped := make(map[Category][]*Task, len(Categories))
	for _, t := range tasks {
		grouped[t.Category] = append(grouped[t.Category], t)
	}

	res := make([]CategorySummary, 0, len(Categories))
	for _, c := range Categories {
		res = append(res, CategorySummary{Category: c, Summary: Summarize(grouped[c])})
	}

	sort.SliceStable(res, func(i, j int) bool {
		iEmpty, jEmpty := res[i].Total == 0, res[j].Total == 0
		if iEmpty != jEmpty {
			return !iEmpty
		}
		return strings.Compare(string(res[i].Category), string(res[j].Category)) < 0
	})
	return res
}

func BuildReport(tasks []*Task) Report {
	return Report{
		Overall:    Summarize(tasks),
		Categories: SummarizeByCategory(tasks),
	}
}

// целочисленное округление num/den вверх от половины, den > 0
func roundHalfUp(num, den int) int {
	return (2*num + den) / (2 * den)
}
