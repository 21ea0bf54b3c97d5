package analysis

import (
	"sort"
	"time"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

// ByDay sums revenue per calendar day in ascending order. Rows whose date
// could not be parsed are left out. ok is false when the dataset has no date
// column.
func ByDay(t entity.Table) (entity.DailyTrend, bool) {
	if !t.Schema.HasDate {
		return nil, false
	}

	totals := make(map[time.Time]float64)
	for _, row := range t.Rows {
		if !row.DateValid {
			continue
		}
		totals[truncateDay(row.Date)] += row.TotalSale
	}

	days := make([]time.Time, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	trend := make(entity.DailyTrend, 0, len(days))
	for _, day := range days {
		trend = append(trend, entity.DailyRevenue{
			Date:    day.Format(entity.DayLayout),
			Revenue: totals[day],
		})
	}
	return trend, true
}

// truncateDay drops the time of day, keeping the calendar day the value had
// in its own location.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
