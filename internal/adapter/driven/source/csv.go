package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// decodeCSV reads a header row and keeps every cell as a string. Empty cells
// become nil and short rows leave their trailing columns nil.
func decodeCSV(rd io.Reader) (entity.RawTable, error) {
	reader := csv.NewReader(rd)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return entity.RawTable{}, types.ErrEmptyFile
	}
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := entity.RawTable{Columns: columns, Rows: []map[string]any{}}
	line := 1
	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.RawTable{}, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}
		table.Rows = append(table.Rows, newRow(columns, record))
	}

	return table, nil
}

func newRow(columns []string, record []string) map[string]any {
	row := make(map[string]any, len(columns))
	for i, col := range columns {
		if i >= len(record) || record[i] == "" {
			row[col] = nil
			continue
		}
		row[col] = record[i]
	}
	return row
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
