package types

import "github.com/diillson/sales-insight-go/internal/domain/entity"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Input      string               `json:"input" yaml:"input" toml:"input"`
	Sheet      string               `json:"sheet" yaml:"sheet" toml:"sheet"`
	ReportName string               `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string             `json:"report_type" yaml:"report_type" toml:"report_type" validate:"omitempty,dive,oneof=csv json pdf"`
	Dir        string               `json:"dir" yaml:"dir" toml:"dir"`
	AWSProfile string               `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion  string               `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
	SQL        SQLConfig            `json:"sql" yaml:"sql" toml:"sql"`
	Columns    entity.ColumnMapping `json:"columns" yaml:"columns" toml:"columns"`
	Server     ServerConfig         `json:"server" yaml:"server" toml:"server"`
}

// SQLConfig selects a database table or query as the input source.
type SQLConfig struct {
	Driver string `json:"driver" yaml:"driver" toml:"driver" validate:"omitempty,oneof=sqlite pgx"`
	DSN    string `json:"dsn" yaml:"dsn" toml:"dsn" validate:"required_with=Driver"`
	Query  string `json:"query" yaml:"query" toml:"query" validate:"required_with=Driver"`
}

// ServerConfig holds the upload server settings. Environment variables with
// the SALES_ prefix override file values.
type ServerConfig struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr" envconfig:"ADDR"`
	MaxUploadMB  int64  `json:"max_upload_mb" yaml:"max_upload_mb" toml:"max_upload_mb" envconfig:"MAX_UPLOAD_MB" validate:"gte=0"`
	MaxSessions  int    `json:"max_sessions" yaml:"max_sessions" toml:"max_sessions" envconfig:"MAX_SESSIONS" validate:"gte=0"`
	AllowOrigins string `json:"allow_origins" yaml:"allow_origins" toml:"allow_origins" envconfig:"ALLOW_ORIGINS"`
}

// DefaultServerConfig returns the settings used when nothing is configured.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8000",
		MaxUploadMB:  32,
		MaxSessions:  64,
		AllowOrigins: "*",
	}
}
