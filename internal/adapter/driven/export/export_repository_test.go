package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/sales-insight-go/internal/domain/analysis"
	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

func fixedRepo() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time {
		return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	}}
}

type failingCloseFile struct {
	bytes.Buffer
	closeErr error
}

func (f *failingCloseFile) Close() error { return f.closeErr }

func sampleAnalysis() entity.Analysis {
	raw := entity.RawTable{
		Columns: []string{"Date", "Category", "TotalSale"},
		Rows: []map[string]any{
			{"Date": "2024-01-02", "Category": "A", "TotalSale": 10},
			{"Date": "2024-01-01", "Category": "B", "TotalSale": 20},
			{"Date": "2024-01-01", "Category": "A", "TotalSale": 5},
		},
	}
	return analysis.New(raw, entity.DefaultColumnMapping()).Snapshot()
}

func TestExportToCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := fixedRepo().ExportToCSV(sampleAnalysis(), "sales", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sales_20240506_070809.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Total Revenue", "35.00"}, records[1])
	assert.Equal(t, []string{"Average Order Value", "11.67"}, records[3])
	assert.Contains(t, records, []string{"B", "20.00"})
	assert.Contains(t, records, []string{"2024-01-01", "25.00"})
}

func TestExportToCSV_AbsentSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, entity.Analysis{}))
	assert.NotContains(t, buf.String(), "Category")
	assert.NotContains(t, buf.String(), "Date")
}

func TestExportToJSON(t *testing.T) {
	path, err := fixedRepo().ExportToJSON(sampleAnalysis(), "sales", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.Analysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.KPIs.TotalOrders)
	require.NotNil(t, decoded.Categories)
	assert.Equal(t, "B", (*decoded.Categories)[0].Category)
	require.NotNil(t, decoded.Trend)
	assert.Equal(t, "2024-01-01", (*decoded.Trend)[0].Date)
}

func TestExportToJSON_OmitsAbsentSections(t *testing.T) {
	path, err := fixedRepo().ExportToJSON(entity.Analysis{}, "empty", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "categories")
	assert.NotContains(t, string(data), "trend")
}

func TestExportToPDF(t *testing.T) {
	path, err := fixedRepo().ExportToPDF(sampleAnalysis(), "sales", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderPDF(t *testing.T) {
	many := entity.CategoryBreakdown{}
	for i := 0; i < 20; i++ {
		many = append(many, entity.CategoryRevenue{Category: string(rune('A' + i)), Revenue: float64(100 - i)})
	}
	trend := entity.DailyTrend{{Date: "2024-01-01", Revenue: 0}}

	tests := []struct {
		name string
		data entity.Analysis
	}{
		{"empty", entity.Analysis{}},
		{"sample", sampleAnalysis()},
		{"many categories single day", entity.Analysis{Categories: &many, Trend: &trend}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, fixedRepo().RenderPDF(tt.data, &buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		})
	}
}

func TestTopCategories(t *testing.T) {
	categories := entity.CategoryBreakdown{
		{Category: "A", Revenue: 5},
		{Category: "", Revenue: 4},
		{Category: "C", Revenue: 3},
		{Category: "D", Revenue: 2},
	}

	assert.Equal(t, []chartPoint{
		{label: "A", value: 5},
		{label: "(blank)", value: 4},
		{label: "Other", value: 5},
	}, topCategories(categories, 3))
	assert.Len(t, topCategories(categories, 4), 4)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(0))
	assert.Equal(t, "$12.50", formatMoney(12.5))
	assert.Equal(t, "$1,234.50", formatMoney(1234.5))
	assert.Equal(t, "$1,234,567.89", formatMoney(1234567.891))
	assert.Equal(t, "-$999.00", formatMoney(-999))
	assert.Equal(t, "3", formatQuantity(3))
	assert.Equal(t, "2.25", formatQuantity(2.25))
}

func TestExport_ReportsCloseError(t *testing.T) {
	diskFull := errors.New("no space left on device")

	exports := map[string]func(*ExportRepositoryImpl, string) (string, error){
		"csv": func(r *ExportRepositoryImpl, dir string) (string, error) {
			return r.ExportToCSV(sampleAnalysis(), "sales", dir)
		},
		"json": func(r *ExportRepositoryImpl, dir string) (string, error) {
			return r.ExportToJSON(sampleAnalysis(), "sales", dir)
		},
		"pdf": func(r *ExportRepositoryImpl, dir string) (string, error) {
			return r.ExportToPDF(sampleAnalysis(), "sales", dir)
		},
	}

	for name, export := range exports {
		t.Run(name, func(t *testing.T) {
			file := &failingCloseFile{closeErr: diskFull}
			repo := fixedRepo()
			repo.create = func(string) (io.WriteCloser, error) { return file, nil }

			path, err := export(repo, t.TempDir())
			assert.ErrorIs(t, err, diskFull)
			assert.Empty(t, path)
			assert.NotZero(t, file.Len())
		})
	}
}

func TestExport_CreateError(t *testing.T) {
	denied := errors.New("permission denied")
	repo := fixedRepo()
	repo.create = func(string) (io.WriteCloser, error) { return nil, denied }

	_, err := repo.ExportToJSON(sampleAnalysis(), "sales", t.TempDir())
	assert.ErrorIs(t, err, denied)
}
