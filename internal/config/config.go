// Package config resolves the viper-backed application configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration keys understood by Load.
const (
	KeyDatabasePath       = "database.path"
	KeyCategoriesEditable = "categories.editable"
	KeyExportFormat       = "export.format"
	KeyImportMergePolicy  = "import.merge_policy"
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath       string
	ExportFormat       string
	ImportMergePolicy  string
	CategoriesEditable bool
}

// SetDefaults registers the documented defaults with viper.
func SetDefaults() {
	viper.SetDefault(KeyDatabasePath, "~/.local/share/daybook/daybook.db")
	viper.SetDefault(KeyCategoriesEditable, true)
	viper.SetDefault(KeyExportFormat, "json")
	viper.SetDefault(KeyImportMergePolicy, "replace")
}

// Load resolves the configuration from viper and validates enum values.
func Load() (Config, error) {
	cfg := Config{
		DatabasePath:       ExpandPath(viper.GetString(KeyDatabasePath)),
		CategoriesEditable: viper.GetBool(KeyCategoriesEditable),
		ExportFormat:       viper.GetString(KeyExportFormat),
		ImportMergePolicy:  viper.GetString(KeyImportMergePolicy),
	}

	switch cfg.ExportFormat {
	case "json", "tabular":
	default:
		return Config{}, fmt.Errorf("invalid export format: %s", cfg.ExportFormat)
	}
	switch cfg.ImportMergePolicy {
	case "replace", "date-merge":
	default:
		return Config{}, fmt.Errorf("invalid import merge policy: %s", cfg.ImportMergePolicy)
	}

	return cfg, nil
}
