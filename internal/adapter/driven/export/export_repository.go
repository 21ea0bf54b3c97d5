package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now    func() time.Time
	create func(name string) (io.WriteCloser, error)
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

func (r *ExportRepositoryImpl) ExportToCSV(data entity.Analysis, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	err = r.writeFile(outputFilename, "CSV", func(w io.Writer) error {
		return writeCSV(w, data)
	})
	if err != nil {
		return "", err
	}

	return filepath.Abs(outputFilename)
}

func writeCSV(w io.Writer, data entity.Analysis) error {
	writer := csv.NewWriter(w)

	records := [][]string{
		{"Metric", "Value"},
		{"Total Revenue", formatFloat(data.KPIs.TotalRevenue)},
		{"Total Orders", strconv.Itoa(data.KPIs.TotalOrders)},
		{"Average Order Value", formatFloat(data.KPIs.AverageOrderValue)},
		{"Total Items Sold", formatFloat(data.KPIs.TotalItems)},
	}

	if data.Categories != nil {
		records = append(records, []string{}, []string{"Category", "Revenue"})
		for _, c := range *data.Categories {
			records = append(records, []string{c.Category, formatFloat(c.Revenue)})
		}
	}

	if data.Trend != nil {
		records = append(records, []string{}, []string{"Date", "Revenue"})
		for _, d := range *data.Trend {
			records = append(records, []string{d.Date, formatFloat(d.Revenue)})
		}
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func (r *ExportRepositoryImpl) ExportToJSON(data entity.Analysis, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	err = r.writeFile(outputFilename, "JSON", func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("error encoding JSON data: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(data entity.Analysis, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	err = r.writeFile(outputFilename, "PDF", func(w io.Writer) error {
		return r.RenderPDF(data, w)
	})
	if err != nil {
		return "", err
	}

	return filepath.Abs(outputFilename)
}

// writeFile cria o arquivo, escreve e fecha. O erro do Close é devolvido
// quando a escrita foi bem-sucedida.
func (r *ExportRepositoryImpl) writeFile(name, kind string, write func(io.Writer) error) (err error) {
	create := r.create
	if create == nil {
		create = func(name string) (io.WriteCloser, error) { return os.Create(name) }
	}

	file, err := create(name)
	if err != nil {
		return fmt.Errorf("error creating %s file: %w", kind, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s file: %w", kind, cerr)
		}
	}()

	return write(file)
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
