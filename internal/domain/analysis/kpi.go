package analysis

import "github.com/diillson/sales-insight-go/internal/domain/entity"

// Summarize computes the headline KPIs. An empty table yields all zeros.
func Summarize(t entity.Table) entity.KPISummary {
	var kpis entity.KPISummary
	for _, row := range t.Rows {
		kpis.TotalRevenue += row.TotalSale
		kpis.TotalItems += row.Quantity
	}
	kpis.TotalOrders = len(t.Rows)
	if kpis.TotalOrders > 0 {
		kpis.AverageOrderValue = kpis.TotalRevenue / float64(kpis.TotalOrders)
	}
	return kpis
}
