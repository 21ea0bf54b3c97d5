package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/domain/repository"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// SourceRepositoryImpl implementa o SourceRepository com cache de config AWS.
type SourceRepositoryImpl struct {
	cfgCache map[string]aws.Config
	mu       sync.Mutex
}

// NewSourceRepository cria uma nova implementação do SourceRepository.
func NewSourceRepository() repository.SourceRepository {
	return &SourceRepositoryImpl{
		cfgCache: make(map[string]aws.Config),
	}
}

// Load lê a tabela bruta do arquivo local, objeto S3 ou consulta SQL indicada.
func (r *SourceRepositoryImpl) Load(ctx context.Context, ref entity.SourceRef) (entity.RawTable, error) {
	switch {
	case ref.SQLDriver != "":
		return r.loadSQL(ctx, ref)
	case strings.HasPrefix(ref.Path, "s3://"):
		return r.loadS3(ctx, ref)
	case ref.Path == "":
		return entity.RawTable{}, types.ErrNoInput
	}

	file, err := os.Open(ref.Path)
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("error opening input file: %w", err)
	}
	defer file.Close()

	return r.Decode(filepath.Base(ref.Path), file, ref)
}

// Decode interpreta o conteúdo de um arquivo pela extensão do nome.
func (r *SourceRepositoryImpl) Decode(name string, rd io.Reader, ref entity.SourceRef) (entity.RawTable, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return decodeCSV(rd)
	case ".xlsx", ".xlsm":
		return decodeExcel(rd, ref.Sheet, ref.Columns.WithDefaults())
	default:
		return entity.RawTable{}, fmt.Errorf("%s: %w", name, types.ErrUnsupportedFormat)
	}
}
