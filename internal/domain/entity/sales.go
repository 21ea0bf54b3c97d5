package entity

import "time"

// DayLayout is the key format used by the daily trend.
const DayLayout = "2006-01-02"

// RawTable is an uploaded table before normalization. Values are whatever the
// parser produced (string, number, time.Time or nil).
type RawTable struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// ColumnMapping maps canonical fields to the header names used in the source.
type ColumnMapping struct {
	Date      string `json:"date" yaml:"date" toml:"date"`
	Quantity  string `json:"quantity" yaml:"quantity" toml:"quantity"`
	UnitPrice string `json:"unit_price" yaml:"unit_price" toml:"unit_price"`
	TotalSale string `json:"total_sale" yaml:"total_sale" toml:"total_sale"`
	Category  string `json:"category" yaml:"category" toml:"category"`
}

// DefaultColumnMapping returns the headers expected when no mapping is configured.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Date:      "Date",
		Quantity:  "Quantity",
		UnitPrice: "UnitPrice",
		TotalSale: "TotalSale",
		Category:  "Category",
	}
}

// WithDefaults fills empty entries with the default header names.
func (m ColumnMapping) WithDefaults() ColumnMapping {
	d := DefaultColumnMapping()
	if m.Date == "" {
		m.Date = d.Date
	}
	if m.Quantity == "" {
		m.Quantity = d.Quantity
	}
	if m.UnitPrice == "" {
		m.UnitPrice = d.UnitPrice
	}
	if m.TotalSale == "" {
		m.TotalSale = d.TotalSale
	}
	if m.Category == "" {
		m.Category = d.Category
	}
	return m
}

// Schema records which canonical columns the dataset carries.
type Schema struct {
	HasDate          bool `json:"has_date"`
	HasQuantity      bool `json:"has_quantity"`
	HasUnitPrice     bool `json:"has_unit_price"`
	HasTotalSale     bool `json:"has_total_sale"`
	HasCategory      bool `json:"has_category"`
	TotalSaleDerived bool `json:"total_sale_derived"`
}

// SalesRow is one normalized record. DateValid is false when the date column
// is absent or the cell could not be parsed.
type SalesRow struct {
	Date      time.Time `json:"date,omitempty"`
	DateValid bool      `json:"date_valid"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	TotalSale float64   `json:"total_sale"`
	Category  string    `json:"category,omitempty"`
}

// Table is the normalized dataset.
type Table struct {
	Schema Schema     `json:"schema"`
	Rows   []SalesRow `json:"rows"`
}
