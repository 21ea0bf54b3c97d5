package source

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// decodeExcel reads the named sheet, or the first one, with raw cell values.
// Numeric cells become float64; numeric cells of the date column are read as
// Excel serial dates.
func decodeExcel(rd io.Reader, sheet string, mapping entity.ColumnMapping) (entity.RawTable, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return entity.RawTable{}, types.ErrEmptyFile
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return entity.RawTable{}, types.ErrEmptyFile
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = strings.TrimSpace(h)
	}

	table := entity.RawTable{Columns: columns, Rows: []map[string]any{}}
	for r, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if i >= len(record) || record[i] == "" {
				row[col] = nil
				continue
			}
			// linha 1 é o cabeçalho
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return entity.RawTable{}, err
			}
			cellType, err := f.GetCellType(sheet, cell)
			if err != nil {
				return entity.RawTable{}, fmt.Errorf("failed to read cell %s: %w", cell, err)
			}
			row[col] = excelValue(record[i], cellType, col == mapping.Date)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// excelValue converte somente células numéricas ou booleanas; texto fica como está.
func excelValue(cell string, cellType excelize.CellType, isDate bool) any {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	case excelize.CellTypeBool:
		return cell == "1" || strings.EqualFold(cell, "true")
	default:
		return cell
	}

	n, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	if isDate {
		if t, err := excelize.ExcelDateToTime(n, false); err == nil {
			return t
		}
	}
	return n
}
