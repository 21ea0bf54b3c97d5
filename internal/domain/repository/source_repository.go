package repository

import (
	"context"
	"io"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

// SourceRepository loads raw sales tables from files, S3 objects or databases.
type SourceRepository interface {
	Load(ctx context.Context, ref entity.SourceRef) (entity.RawTable, error)
	Decode(name string, r io.Reader, ref entity.SourceRef) (entity.RawTable, error)
}
