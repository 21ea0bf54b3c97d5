package analysis

import (
	"sort"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

// ByCategory sums revenue per category label, highest first. Equal revenues
// keep the order in which their categories first appear in the table.
// ok is false when the dataset has no category column.
func ByCategory(t entity.Table) (entity.CategoryBreakdown, bool) {
	if !t.Schema.HasCategory {
		return nil, false
	}

	index := make(map[string]int)
	breakdown := entity.CategoryBreakdown{}
	for _, row := range t.Rows {
		i, exists := index[row.Category]
		if !exists {
			i = len(breakdown)
			index[row.Category] = i
			breakdown = append(breakdown, entity.CategoryRevenue{Category: row.Category})
		}
		breakdown[i].Revenue += row.TotalSale
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Revenue > breakdown[j].Revenue
	})
	return breakdown, true
}
