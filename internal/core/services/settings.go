package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// Config keys for pipeline settings.
const (
	KeyPageSize       = "drive.page_size"
	KeyMaxRetries     = "drive.max_retries"
	KeyPDFMaxPages    = "drive.pdf_max_pages"
	KeyExportMaxBytes = "drive.export_max_bytes"
	KeyWorkers        = "extract.workers"
)

// Pipeline defaults.
const (
	DefaultPageSize       = 1000
	DefaultMaxRetries     = 10
	DefaultPDFMaxPages    = 100
	DefaultExportMaxBytes = 5 * 1024 * 1024
	DefaultWorkers        = 4
)

// Config holds the tunables of a sync run.
type Config struct {
	// PageSize is the drive listing page size.
	PageSize int64

	// MaxRetries is the retry budget passed to every drive call.
	// Zero means a single attempt.
	MaxRetries int

	// PDFMaxPages caps the number of PDF pages read per file.
	PDFMaxPages int

	// ExportMaxBytes caps the text kept from a native document export.
	// Raw PDF downloads are capped by the drive client instead.
	ExportMaxBytes int64

	// Workers bounds concurrent content extraction.
	Workers int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:       DefaultPageSize,
		MaxRetries:     DefaultMaxRetries,
		PDFMaxPages:    DefaultPDFMaxPages,
		ExportMaxBytes: DefaultExportMaxBytes,
		Workers:        DefaultWorkers,
	}
}

// MinSetting returns the smallest value accepted for a pipeline setting.
// Only the retry budget may be zero.
func MinSetting(key string) int {
	if key == KeyMaxRetries {
		return 0
	}
	return 1
}

// LoadConfig reads pipeline settings from the config store.
// Missing, non-integer or out of range values fall back to defaults.
func LoadConfig(store driven.ConfigStore) Config {
	cfg := DefaultConfig()
	if store == nil {
		return cfg
	}

	cfg.PageSize = int64(getInt(store, KeyPageSize, int(cfg.PageSize)))
	cfg.MaxRetries = getInt(store, KeyMaxRetries, cfg.MaxRetries)
	cfg.PDFMaxPages = getInt(store, KeyPDFMaxPages, cfg.PDFMaxPages)
	cfg.ExportMaxBytes = int64(getInt(store, KeyExportMaxBytes, int(cfg.ExportMaxBytes)))
	cfg.Workers = getInt(store, KeyWorkers, cfg.Workers)
	return cfg
}

// SaveConfig persists pipeline settings to the config store.
func SaveConfig(store driven.ConfigStore, cfg Config) error {
	values := []struct {
		key   string
		value int64
	}{
		{KeyPageSize, cfg.PageSize},
		{KeyMaxRetries, int64(cfg.MaxRetries)},
		{KeyPDFMaxPages, int64(cfg.PDFMaxPages)},
		{KeyExportMaxBytes, cfg.ExportMaxBytes},
		{KeyWorkers, int64(cfg.Workers)},
	}
	for _, v := range values {
		if err := store.Set(v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}

func getInt(store driven.ConfigStore, key string, defaultVal int) int {
	raw, ok := store.Get(key)
	if !ok {
		return defaultVal
	}

	// GetInt reports 0 for values that are not integers
	val := store.GetInt(key)
	if val == 0 && strings.TrimSpace(fmt.Sprint(raw)) != "0" {
		return defaultVal
	}
	if val < MinSetting(key) {
		return defaultVal
	}
	return val
}
