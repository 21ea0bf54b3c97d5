package entity

// KPISummary holds the headline metrics of a dataset.
type KPISummary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"avg_order_value"`
	TotalItems        float64 `json:"total_items"`
}

// CategoryRevenue is the summed revenue of one category label.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CategoryBreakdown is ordered by descending revenue.
type CategoryBreakdown []CategoryRevenue

// Total sums every bucket of the breakdown.
func (b CategoryBreakdown) Total() float64 {
	var total float64
	for _, c := range b {
		total += c.Revenue
	}
	return total
}

// DailyRevenue is the summed revenue of one calendar day (YYYY-MM-DD).
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// DailyTrend is ordered ascending by date.
type DailyTrend []DailyRevenue

// Total sums every day of the trend.
func (d DailyTrend) Total() float64 {
	var total float64
	for _, day := range d {
		total += day.Revenue
	}
	return total
}

// Analysis bundles every derived output of one dataset. A nil breakdown or
// trend means the source column was absent.
type Analysis struct {
	KPIs       KPISummary         `json:"kpis"`
	Categories *CategoryBreakdown `json:"categories,omitempty"`
	Trend      *DailyTrend        `json:"trend,omitempty"`
}

// SourceRef identifies where a raw table is loaded from.
type SourceRef struct {
	Path       string        `json:"path,omitempty"`
	Sheet      string        `json:"sheet,omitempty"`
	AWSProfile string        `json:"aws_profile,omitempty"`
	AWSRegion  string        `json:"aws_region,omitempty"`
	SQLDriver  string        `json:"sql_driver,omitempty"`
	SQLDSN     string        `json:"-"`
	SQLQuery   string        `json:"sql_query,omitempty"`
	Columns    ColumnMapping `json:"columns"`
}
