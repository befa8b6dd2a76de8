package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "http:\n  address: \":9090\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, BackendXML, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join("data", "sessions.xml"), cfg.Storage.Path(cfg.Storage.SessionsFile))
	assert.Equal(t, "specific_first", cfg.BoxOffice.SeatCheckOrder)
	assert.Equal(t, 30, cfg.BoxOffice.SeatHoldSeconds)
	assert.Equal(t, "box_office_events", cfg.Kafka.EventsTopic)
}

func TestLoadConfig_Full(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
storage:
  backend: postgres
  data_dir: /var/lib/boxoffice
database:
  host: localhost
  port: 5432
  user: box
  password: secret
  name: boxoffice
  ssl_mode: disable
redis:
  addr: localhost:6379
kafka:
  brokers: [localhost:9092]
  events_topic: tickets
box_office:
  seat_check_order: capacity_first
`))
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "host=localhost port=5432 user=box password=secret dbname=boxoffice sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "tickets", cfg.Kafka.EventsTopic)
	assert.Equal(t, "capacity_first", cfg.BoxOffice.SeatCheckOrder)
	assert.Equal(t, "/abs/tickets.xml", cfg.Storage.Path("/abs/tickets.xml"))
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "storage:\n  backend: sqlite\nbox_office:\n  seat_check_order: random\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
	assert.Contains(t, err.Error(), "seat_check_order")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "http: [\n"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.HTTP.Address)
}

func TestLoadConfig_PublishRetries(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "kafka:\n  publish_retries: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Kafka.PublishRetries)

	assert.Equal(t, 3, Default().Kafka.PublishRetries)

	_, err = LoadConfig(writeConfig(t, "kafka:\n  publish_retries: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish_retries")
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("Default file missing", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("CONFIG_PATH", "")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Default file present", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("http:\n  address: \":7070\"\n"), 0o644))
		t.Chdir(dir)
		t.Setenv("CONFIG_PATH", "")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.HTTP.Address)
	})

	t.Run("Explicit path", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "log:\n  level: debug\n"))

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Explicit path missing", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := LoadFromEnv()
		assert.Error(t, err)
	})
}
