package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults fill unset fields", func(t *testing.T) {
		path := writeConfigFile(t, "database:\n  path: /tmp/test.db\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
		assert.Equal(t, 8, cfg.Reminder.StartHour)
		assert.Equal(t, 22, cfg.Reminder.EndHour)
		assert.Equal(t, "backups", cfg.Backup.Directory)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
database:
  path: /var/lib/doughub/doughub.db
reminder:
  start_hour: 9
  end_hour: 18
backup:
  directory: /var/backups/doughub
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "/var/lib/doughub/doughub.db", cfg.Database.Path)
		assert.Equal(t, 9, cfg.Reminder.StartHour)
		assert.Equal(t, 18, cfg.Reminder.EndHour)
		assert.Equal(t, "/var/backups/doughub", cfg.Backup.Directory)
	})

	t.Run("api key comes from the environment", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("OPENAI_MODEL", "gpt-4o")
		path := writeConfigFile(t, "database:\n  path: /tmp/test.db\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
		assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	})

	t.Run("reminder window must be ordered", func(t *testing.T) {
		path := writeConfigFile(t, `
reminder:
  start_hour: 20
  end_hour: 8
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("hours must be within a day", func(t *testing.T) {
		path := writeConfigFile(t, `
reminder:
  start_hour: 8
  end_hour: 25
`)

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
