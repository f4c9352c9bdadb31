package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  host: db.internal
  port: 6543
  name: airbooking
  install_id_triggers: false
kafka:
  brokers: ["localhost:9092"]
console:
  output: table
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "airbooking", cfg.Database.Name)
	assert.False(t, cfg.Database.InstallIDTriggers)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "table", cfg.Console.Output)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: ["), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv_Password(t *testing.T) {
	t.Setenv(PasswordEnv, "s3cret")
	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: 5432, User: "alice", Name: "air", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=alice password='' dbname=air sslmode=disable", d.DSN())

	d.Password = "it's here"
	assert.Equal(t, `host=localhost port=5432 user=alice password='it\'s here' dbname=air sslmode=disable`, d.DSN())

	d = DatabaseConfig{Host: "localhost", Port: 5432, User: "air user", Password: "pw", Name: "air db", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user='air user' password=pw dbname='air db' sslmode=disable", d.DSN())
}

func TestKafkaConfig_Enabled(t *testing.T) {
	assert.False(t, KafkaConfig{}.Enabled())
	assert.True(t, KafkaConfig{Brokers: []string{"localhost:9092"}, NotificationsTopic: "notifications"}.Enabled())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.ErrorContains(t, cfg.Validate(), "database name")

	cfg.Database.Name = "air"
	assert.ErrorContains(t, cfg.Validate(), "database user")

	cfg.Database.User = "alice"
	assert.NoError(t, cfg.Validate())

	cfg.Console.Output = "xml"
	assert.ErrorContains(t, cfg.Validate(), "unknown output format")

	cfg.Console.Output = "tsv"
	cfg.Database.Port = 0
	assert.ErrorContains(t, cfg.Validate(), "invalid database port")
}
