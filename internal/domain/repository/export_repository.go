package repository

import (
	"io"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

// ExportRepository writes analysis reports.
type ExportRepository interface {
	ExportToCSV(data entity.Analysis, filename string, outputDir string) (string, error)
	ExportToJSON(data entity.Analysis, filename string, outputDir string) (string, error)
	ExportToPDF(data entity.Analysis, filename string, outputDir string) (string, error)

	RenderPDF(data entity.Analysis, w io.Writer) error
}
