package schoolwork

import (
	"sort"
	"time"

	"pack/internal/model"
)

// Group buckets work relative to now. Days are calendar days in now's location
// and this_week covers the six days after today.
func Group(work []model.Schoolwork, now time.Time) Overview {
	out := Overview{
		Overdue:   []Item{},
		Today:     []Item{},
		ThisWeek:  []Item{},
		Later:     []Item{},
		Completed: []Item{},
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := startOfDay.AddDate(0, 0, 1)
	weekEnd := startOfDay.AddDate(0, 0, 7)

	for i := range work {
		w := &work[i]
		item := toItem(w)
		switch {
		case w.Completed():
			out.Completed = append(out.Completed, item)
		case w.Due.Before(now):
			out.Overdue = append(out.Overdue, item)
		case w.Due.Before(tomorrow):
			out.Today = append(out.Today, item)
		case w.Due.Before(weekEnd):
			out.ThisWeek = append(out.ThisWeek, item)
		default:
			out.Later = append(out.Later, item)
		}
	}

	for _, bucket := range [][]Item{out.Overdue, out.Today, out.ThisWeek, out.Later, out.Completed} {
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].Due.Before(bucket[j].Due) })
	}

	if len(work) > 0 {
		out.CompletionRatio = float64(len(out.Completed)) / float64(len(work))
	}
	return out
}

func toItem(w *model.Schoolwork) Item {
	return Item{
		ID:          w.ID,
		Title:       w.Title,
		Subject:     w.Subject,
		Description: w.Description,
		Due:         w.Due,
		CompletedAt: w.CompletedAt,
	}
}
