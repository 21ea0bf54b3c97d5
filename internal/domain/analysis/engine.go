// Package analysis normalizes uploaded sales tables and computes the KPI
// summary, the category breakdown and the daily revenue trend.
//
// An Engine wraps exactly one dataset. It is never mutated after New returns,
// so concurrent readers need no locking.
package analysis

import "github.com/diillson/sales-insight-go/internal/domain/entity"

// Engine holds the normalized table of one uploaded dataset.
type Engine struct {
	table entity.Table
}

// New normalizes raw and returns an engine over the result.
func New(raw entity.RawTable, mapping entity.ColumnMapping) *Engine {
	return &Engine{table: Normalize(raw, mapping)}
}

// Table returns the normalized table. Callers must treat it as read-only.
func (e *Engine) Table() entity.Table {
	return e.table
}

// Summarize returns the KPI summary.
func (e *Engine) Summarize() entity.KPISummary {
	return Summarize(e.table)
}

// ByCategory returns the category breakdown; ok is false when absent.
func (e *Engine) ByCategory() (entity.CategoryBreakdown, bool) {
	return ByCategory(e.table)
}

// ByDay returns the daily trend; ok is false when absent.
func (e *Engine) ByDay() (entity.DailyTrend, bool) {
	return ByDay(e.table)
}

// Snapshot computes every output at once.
func (e *Engine) Snapshot() entity.Analysis {
	a := entity.Analysis{KPIs: e.Summarize()}
	if categories, ok := e.ByCategory(); ok {
		a.Categories = &categories
	}
	if trend, ok := e.ByDay(); ok {
		a.Trend = &trend
	}
	return a
}
