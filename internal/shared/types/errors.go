package types

import "errors"

var (
	ErrNoInput            = errors.New("no input given. Use --input or set 'input' in the config file")
	ErrUnsupportedFormat  = errors.New("unsupported file format. Use .csv, .xlsx or .xlsm")
	ErrEmptyFile          = errors.New("file has no header row")
	ErrSessionNotFound    = errors.New("session not found. Upload a file first")
	ErrUnsupportedDriver  = errors.New("unsupported SQL driver. Use sqlite or pgx")
	ErrInvalidS3Reference = errors.New("invalid S3 reference, expected s3://bucket/key")
)
