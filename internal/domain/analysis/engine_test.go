package analysis

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

func newEngine(cols []string, rows ...map[string]any) *Engine {
	return New(entity.RawTable{Columns: cols, Rows: rows}, entity.DefaultColumnMapping())
}

func TestEngine_DerivedTotalSale(t *testing.T) {
	e := newEngine([]string{"Quantity", "UnitPrice"},
		map[string]any{"Quantity": 2, "UnitPrice": 10.0},
		map[string]any{"Quantity": 1, "UnitPrice": 5.0},
	)

	kpis := e.Summarize()
	assert.Equal(t, 25.0, kpis.TotalRevenue)
	assert.Equal(t, 2, kpis.TotalOrders)
	assert.Equal(t, 12.5, kpis.AverageOrderValue)
	assert.Equal(t, 3.0, kpis.TotalItems)
	assert.True(t, e.Table().Schema.TotalSaleDerived)

	_, ok := e.ByCategory()
	assert.False(t, ok)
	_, ok = e.ByDay()
	assert.False(t, ok)

	snap := e.Snapshot()
	assert.Nil(t, snap.Categories)
	assert.Nil(t, snap.Trend)
}

func TestEngine_CategoryBreakdownDescending(t *testing.T) {
	e := newEngine([]string{"Category", "TotalSale"},
		map[string]any{"Category": "A", "TotalSale": 10},
		map[string]any{"Category": "B", "TotalSale": 20},
		map[string]any{"Category": "A", "TotalSale": 5},
	)

	got, ok := e.ByCategory()
	require.True(t, ok)
	assert.Equal(t, entity.CategoryBreakdown{
		{Category: "B", Revenue: 20},
		{Category: "A", Revenue: 15},
	}, got)
}

func TestEngine_CategoryTieKeepsFirstSeen(t *testing.T) {
	e := newEngine([]string{"Category", "TotalSale"},
		map[string]any{"Category": "z", "TotalSale": 5},
		map[string]any{"Category": "a", "TotalSale": 9},
		map[string]any{"Category": "m", "TotalSale": 5},
		map[string]any{"Category": "Z", "TotalSale": 5},
	)

	got, ok := e.ByCategory()
	require.True(t, ok)
	labels := make([]string, len(got))
	for i, c := range got {
		labels[i] = c.Category
	}
	assert.Equal(t, []string{"a", "z", "m", "Z"}, labels)
}

func TestEngine_CategoryLabelsAreNotFolded(t *testing.T) {
	e := newEngine([]string{"Category", "TotalSale"},
		map[string]any{"Category": "Books", "TotalSale": 1},
		map[string]any{"Category": "books", "TotalSale": 1},
		map[string]any{"Category": "Books ", "TotalSale": 1},
	)

	got, ok := e.ByCategory()
	require.True(t, ok)
	assert.Len(t, got, 3)
}

func TestEngine_CategoryPresentButEmptyTable(t *testing.T) {
	e := newEngine([]string{"Category", "TotalSale"})

	got, ok := e.ByCategory()
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestEngine_DailyTrendAscending(t *testing.T) {
	e := newEngine([]string{"Date", "TotalSale"},
		map[string]any{"Date": "2024-01-02", "TotalSale": 5},
		map[string]any{"Date": "2024-01-01", "TotalSale": 3},
		map[string]any{"Date": "2024-01-01", "TotalSale": 7},
	)

	got, ok := e.ByDay()
	require.True(t, ok)
	assert.Equal(t, entity.DailyTrend{
		{Date: "2024-01-01", Revenue: 10},
		{Date: "2024-01-02", Revenue: 5},
	}, got)
}

func TestEngine_DailyTrendDropsTimeOfDay(t *testing.T) {
	e := newEngine([]string{"Date", "TotalSale"},
		map[string]any{"Date": "2024-03-05 08:15:00", "TotalSale": 1.5},
		map[string]any{"Date": "2024-03-05T23:59:59Z", "TotalSale": 2.5},
		map[string]any{"Date": time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), "TotalSale": 4},
	)

	got, ok := e.ByDay()
	require.True(t, ok)
	assert.Equal(t, entity.DailyTrend{
		{Date: "2024-03-04", Revenue: 4},
		{Date: "2024-03-05", Revenue: 4},
	}, got)
}

func TestEngine_UnparseableDateExcludedFromTrendOnly(t *testing.T) {
	e := newEngine([]string{"Date", "TotalSale", "Category"},
		map[string]any{"Date": "2024-01-01", "TotalSale": 3, "Category": "A"},
		map[string]any{"Date": "not a date", "TotalSale": 7, "Category": "A"},
		map[string]any{"Date": nil, "TotalSale": 1, "Category": "B"},
	)

	trend, ok := e.ByDay()
	require.True(t, ok)
	assert.Equal(t, entity.DailyTrend{{Date: "2024-01-01", Revenue: 3}}, trend)

	kpis := e.Summarize()
	assert.Equal(t, 11.0, kpis.TotalRevenue)
	assert.Equal(t, 3, kpis.TotalOrders)

	categories, ok := e.ByCategory()
	require.True(t, ok)
	assert.Equal(t, kpis.TotalRevenue, categories.Total())
}

func TestEngine_NonNumericUnitPrice(t *testing.T) {
	e := newEngine([]string{"Quantity", "UnitPrice"},
		map[string]any{"Quantity": 3, "UnitPrice": "abc"},
		map[string]any{"Quantity": "2", "UnitPrice": " 4.5 "},
	)

	require.NotPanics(t, func() { e.Summarize() })
	kpis := e.Summarize()
	assert.Equal(t, 9.0, kpis.TotalRevenue)
	assert.Equal(t, 5.0, kpis.TotalItems)
	assert.Equal(t, 0.0, e.Table().Rows[0].UnitPrice)
}

func TestEngine_EmptyTable(t *testing.T) {
	e := newEngine(nil)

	assert.Equal(t, entity.KPISummary{}, e.Summarize())
	_, ok := e.ByCategory()
	assert.False(t, ok)
	_, ok = e.ByDay()
	assert.False(t, ok)
}

func TestEngine_NoNumericColumns(t *testing.T) {
	e := newEngine([]string{"Region"},
		map[string]any{"Region": "North"},
		map[string]any{"Region": "South"},
	)

	kpis := e.Summarize()
	assert.Equal(t, 0.0, kpis.TotalRevenue)
	assert.Equal(t, 2, kpis.TotalOrders)
	assert.Equal(t, 0.0, kpis.AverageOrderValue)
	assert.Equal(t, 0.0, kpis.TotalItems)
}

func TestEngine_SuppliedTotalSaleIsNeverOverwritten(t *testing.T) {
	e := newEngine([]string{"Quantity", "UnitPrice", "TotalSale"},
		map[string]any{"Quantity": 2, "UnitPrice": 10, "TotalSale": "n/a"},
		map[string]any{"Quantity": 1, "UnitPrice": 5, "TotalSale": 0},
	)

	assert.False(t, e.Table().Schema.TotalSaleDerived)
	assert.Equal(t, 0.0, e.Summarize().TotalRevenue)
}

func TestEngine_SchemaInferredFromRows(t *testing.T) {
	e := newEngine(nil,
		map[string]any{"Category": "A", "TotalSale": 4},
		map[string]any{"TotalSale": 6},
	)

	got, ok := e.ByCategory()
	require.True(t, ok)
	assert.Equal(t, entity.CategoryBreakdown{
		{Category: "", Revenue: 6},
		{Category: "A", Revenue: 4},
	}, got)
}

func TestEngine_CustomColumnMapping(t *testing.T) {
	raw := entity.RawTable{
		Columns: []string{"order_day", "qty", "price", "segment"},
		Rows: []map[string]any{
			{"order_day": "2024-02-01", "qty": 2, "price": 3, "segment": "x"},
		},
	}
	e := New(raw, entity.ColumnMapping{Date: "order_day", Quantity: "qty", UnitPrice: "price", Category: "segment"})

	assert.Equal(t, 6.0, e.Summarize().TotalRevenue)
	trend, ok := e.ByDay()
	require.True(t, ok)
	assert.Equal(t, entity.DailyTrend{{Date: "2024-02-01", Revenue: 6}}, trend)
}

func TestEngine_DoesNotMutateRawTable(t *testing.T) {
	row := map[string]any{"Quantity": "2", "UnitPrice": "3", "Date": "2024-01-01"}
	raw := entity.RawTable{Columns: []string{"Quantity", "UnitPrice", "Date"}, Rows: []map[string]any{row}}

	New(raw, entity.DefaultColumnMapping())

	assert.Equal(t, map[string]any{"Quantity": "2", "UnitPrice": "3", "Date": "2024-01-01"}, row)
	assert.Len(t, raw.Columns, 3)
}

func TestEngine_Properties(t *testing.T) {
	e := newEngine([]string{"Date", "Category", "Quantity", "UnitPrice"},
		map[string]any{"Date": "2024-01-03", "Category": "A", "Quantity": 1, "UnitPrice": 2.5},
		map[string]any{"Date": "2024-01-01", "Category": "B", "Quantity": 4, "UnitPrice": 1.25},
		map[string]any{"Date": "garbage", "Category": "C", "Quantity": 2, "UnitPrice": 8},
		map[string]any{"Date": "01/02/2024", "Category": "A", "Quantity": 3, "UnitPrice": 1},
	)

	kpis := e.Summarize()
	assert.InDelta(t, kpis.TotalRevenue/float64(kpis.TotalOrders), kpis.AverageOrderValue, 1e-9)

	var sum float64
	for _, row := range e.Table().Rows {
		sum += row.TotalSale
	}
	assert.InDelta(t, sum, kpis.TotalRevenue, 1e-9)

	categories, _ := e.ByCategory()
	assert.InDelta(t, kpis.TotalRevenue, categories.Total(), 1e-9)
	for i := 1; i < len(categories); i++ {
		assert.GreaterOrEqual(t, categories[i-1].Revenue, categories[i].Revenue)
	}

	trend, _ := e.ByDay()
	assert.InDelta(t, kpis.TotalRevenue-16, trend.Total(), 1e-9)
	for i := 1; i < len(trend); i++ {
		assert.Less(t, trend[i-1].Date, trend[i].Date)
	}
	assert.Equal(t, "2024-01-02", trend[1].Date)

	assert.Equal(t, e.Snapshot(), e.Snapshot())
}

func TestEngine_ConcurrentReaders(t *testing.T) {
	e := newEngine([]string{"Date", "Category", "TotalSale"},
		map[string]any{"Date": "2024-01-01", "Category": "A", "TotalSale": 1},
		map[string]any{"Date": "2024-01-02", "Category": "B", "TotalSale": 2},
	)
	want := e.Snapshot()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, e.Snapshot())
		}()
	}
	wg.Wait()
}
