package repository

import (
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	ApplyEnv(cfg *types.ServerConfig) error
}
