package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	BoxOffice BoxOfficeConfig `yaml:"box_office"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
	GinMode    string `yaml:"gin_mode"`
}

// GRPCConfig enables the grpc health endpoint when Address is set.
type GRPCConfig struct {
	Address string `yaml:"address"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	BackendXML      = "xml"
	BackendPostgres = "postgres"
)

type StorageConfig struct {
	Backend       string `yaml:"backend"`
	DataDir       string `yaml:"data_dir"`
	MoviesFile    string `yaml:"movies_file"`
	CustomersFile string `yaml:"customers_file"`
	SessionsFile  string `yaml:"sessions_file"`
	TicketsFile   string `yaml:"tickets_file"`
}

func (s StorageConfig) Path(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(s.DataDir, file)
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig enables seat holds and the sessions cache when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig enables box-office events when Brokers is not empty.
type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	EventsTopic    string   `yaml:"events_topic"`
	GroupID        string   `yaml:"group_id"`
	// PublishRetries is the number of attempts a ticket_issued event gets.
	PublishRetries int      `yaml:"publish_retries"`
}

type BoxOfficeConfig struct {
	// SeatCheckOrder is "specific_first" or "capacity_first".
	SeatCheckOrder       string `yaml:"seat_check_order"`
	SeatHoldSeconds      int    `yaml:"seat_hold_seconds"`
	SessionsCacheSeconds int    `yaml:"sessions_cache_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// DefaultPath is read when CONFIG_PATH is not set.
const DefaultPath = "config.yaml"

// LoadFromEnv loads the file named by CONFIG_PATH. Without CONFIG_PATH it reads
// DefaultPath, or returns Default() when that file does not exist. An explicit
// CONFIG_PATH must point at a readable file.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat(DefaultPath); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		path = DefaultPath
	}
	return LoadConfig(path)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendXML
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.MoviesFile == "" {
		c.Storage.MoviesFile = "movies.xml"
	}
	if c.Storage.CustomersFile == "" {
		c.Storage.CustomersFile = "customers.xml"
	}
	if c.Storage.SessionsFile == "" {
		c.Storage.SessionsFile = "sessions.xml"
	}
	if c.Storage.TicketsFile == "" {
		c.Storage.TicketsFile = "tickets.xml"
	}
	if c.Kafka.EventsTopic == "" {
		c.Kafka.EventsTopic = "box_office_events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "box_office_receipts"
	}
	if c.Kafka.PublishRetries == 0 {
		c.Kafka.PublishRetries = 3
	}
	if c.BoxOffice.SeatCheckOrder == "" {
		c.BoxOffice.SeatCheckOrder = "specific_first"
	}
	if c.BoxOffice.SeatHoldSeconds == 0 {
		c.BoxOffice.SeatHoldSeconds = 30
	}
	if c.BoxOffice.SessionsCacheSeconds == 0 {
		c.BoxOffice.SessionsCacheSeconds = 60
	}
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendXML, BackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q: want %q or %q", c.Storage.Backend, BackendXML, BackendPostgres))
	}
	switch c.BoxOffice.SeatCheckOrder {
	case "specific_first", "capacity_first":
	default:
		errs = append(errs, fmt.Errorf("box_office.seat_check_order %q: want specific_first or capacity_first", c.BoxOffice.SeatCheckOrder))
	}
	if c.Kafka.PublishRetries < 0 {
		errs = append(errs, errors.New("kafka.publish_retries must not be negative"))
	}
	if c.BoxOffice.SeatHoldSeconds < 0 {
		errs = append(errs, errors.New("box_office.seat_hold_seconds must not be negative"))
	}
	if c.BoxOffice.SessionsCacheSeconds < 0 {
		errs = append(errs, errors.New("box_office.sessions_cache_seconds must not be negative"))
	}
	return errors.Join(errs...)
}
