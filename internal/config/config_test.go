package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty path", in: "", want: ""},
		{name: "absolute path unchanged", in: "/var/lib/daybook.db", want: "/var/lib/daybook.db"},
		{name: "tilde expands to home", in: "~/data/daybook.db", want: filepath.Join(home, "data/daybook.db")},
		{name: "bare tilde", in: "~", want: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestExpandPath_EnvVar(t *testing.T) {
	t.Setenv("DAYBOOK_TEST_DIR", "/tmp/daybook-test")
	assert.Equal(t, "/tmp/daybook-test/db.sqlite", ExpandPath("$DAYBOOK_TEST_DIR/db.sqlite"))
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(cfg.DatabasePath, "daybook.db"),
		"unexpected default database path: %q", cfg.DatabasePath)
	assert.True(t, cfg.CategoriesEditable)
	assert.Equal(t, "json", cfg.ExportFormat)
	assert.Equal(t, "replace", cfg.ImportMergePolicy)
}

func TestLoad_RejectsInvalidEnums(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad export format", key: KeyExportFormat, value: "csv"},
		{name: "bad merge policy", key: KeyImportMergePolicy, value: "append"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			SetDefaults()
			viper.Set(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
