package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PasswordEnv supplies the database password so it never has to sit in a config file.
const PasswordEnv = "AIRBOOKING_DB_PASSWORD"

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Console  ConsoleConfig  `yaml:"console"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	User              string `yaml:"user"`
	Password          string `yaml:"password"`
	Name              string `yaml:"name"`
	SSLMode           string `yaml:"ssl_mode"`
	ConnectTimeoutSec int    `yaml:"connect_timeout_seconds"`
	// InstallIDTriggers re-creates the ID-assigning triggers on startup.
	InstallIDTriggers bool `yaml:"install_id_triggers"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", quoteDSN(d.Host), d.Port, quoteDSN(d.User), quoteDSN(d.Password), quoteDSN(d.Name), quoteDSN(d.SSLMode))
}

func (d DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(d.ConnectTimeoutSec) * time.Second
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// Enabled reports whether a producer is needed. Each topic is checked by its publisher.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type ConsoleConfig struct {
	// Output is "tsv" or "table".
	Output string `yaml:"output"`
	Color  bool   `yaml:"color"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:              "localhost",
			Port:              5432,
			SSLMode:           "disable",
			ConnectTimeoutSec: 5,
			InstallIDTriggers: true,
		},
		Kafka: KafkaConfig{
			BookingEventsTopic: "airbooking.events",
			NotificationsTopic: "airbooking.notifications",
			GroupID:            "airbooking-notifier",
		},
		Console: ConsoleConfig{Output: "tsv", Color: true},
		Log:     LogConfig{Level: "info"},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOptional is LoadConfig for callers that can run on defaults: a missing file is not an error.
func LoadOptional(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overlays values taken from the environment.
func (c *Config) ApplyEnv() {
	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		c.Database.Password = pw
	}
}

func (c *Config) Validate() error {
	if c.Database.Name == "" {
		return errors.New("database name is required")
	}
	if c.Database.User == "" {
		return errors.New("database user is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port %d", c.Database.Port)
	}
	switch c.Console.Output {
	case "tsv", "table":
	default:
		return fmt.Errorf("unknown output format %q", c.Console.Output)
	}
	return nil
}

func quoteDSN(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
