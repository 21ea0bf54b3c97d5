package analysis

import (
	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

// Normalize coerces a raw table into a typed one. Column presence is decided
// from the schema only; the raw table is not modified.
func Normalize(raw entity.RawTable, mapping entity.ColumnMapping) entity.Table {
	m := mapping.WithDefaults()

	present := make(map[string]bool)
	for _, col := range schemaColumns(raw) {
		present[col] = true
	}

	schema := entity.Schema{
		HasDate:      present[m.Date],
		HasQuantity:  present[m.Quantity],
		HasUnitPrice: present[m.UnitPrice],
		HasTotalSale: present[m.TotalSale],
		HasCategory:  present[m.Category],
	}
	schema.TotalSaleDerived = !schema.HasTotalSale && schema.HasQuantity && schema.HasUnitPrice

	rows := make([]entity.SalesRow, len(raw.Rows))
	for i, cells := range raw.Rows {
		var row entity.SalesRow
		if schema.HasDate {
			row.Date, row.DateValid = toDate(cells[m.Date])
		}
		if schema.HasQuantity {
			row.Quantity = toFloat(cells[m.Quantity])
		}
		if schema.HasUnitPrice {
			row.UnitPrice = toFloat(cells[m.UnitPrice])
		}
		switch {
		case schema.HasTotalSale:
			row.TotalSale = toFloat(cells[m.TotalSale])
		case schema.TotalSaleDerived:
			row.TotalSale = row.Quantity * row.UnitPrice
		}
		if schema.HasCategory {
			row.Category = toLabel(cells[m.Category])
		}
		rows[i] = row
	}

	return entity.Table{Schema: schema, Rows: rows}
}

// schemaColumns returns the declared columns, or the union of row keys when
// the table carries no header list.
func schemaColumns(raw entity.RawTable) []string {
	if len(raw.Columns) > 0 {
		return raw.Columns
	}
	seen := make(map[string]bool)
	var cols []string
	for _, row := range raw.Rows {
		// ordem não importa, só presença
		for key := range row {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}
