package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "staffing.db", cfg.Database.Path)
	assert.Equal(t, 13, cfg.Board.QuarterWeeks)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server:\n  port: 3000\nboard:\n  quarter_weeks: 12\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Board.QuarterWeeks)
	assert.Equal(t, "staffing.db", cfg.Database.Path, "untouched keys keep defaults")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	path2 := filepath.Join(t.TempDir(), "staffing.yaml")
	require.NoError(t, os.WriteFile(path2, []byte("board:\n  quarter_weeks: 0\n"), 0o644))
	_, err = Load(path2)
	assert.Error(t, err)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := Load("/nonexistent/staffing.yaml")
	assert.Error(t, err)
}
