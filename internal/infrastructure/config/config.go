package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the TVWIZ controller.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Serial    SerialConfig    `yaml:"serial"`
	Hardware  HardwareConfig  `yaml:"hardware"`
	Learn     LearnConfig     `yaml:"learn"`
	Send      SendConfig      `yaml:"send"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TransportConfig selects the host-facing byte stream.
type TransportConfig struct {
	// Type is "serial" for a real host link or "stdio" for driving the
	// controller interactively during development.
	Type string `yaml:"type"`
}

// SerialConfig contains serial port settings for the host link.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// HardwareConfig selects the IR transceiver driver.
type HardwareConfig struct {
	// Driver names the transceiver implementation. "sim" is built in;
	// real drivers register under their own names.
	Driver string `yaml:"driver"`
}

// LearnConfig contains capture loop settings.
type LearnConfig struct {
	// DefaultTimeoutMs applies when a learn request omits timeout_ms.
	DefaultTimeoutMs int `yaml:"default_timeout_ms"`

	// PollIntervalMs is the pause between decoder polls.
	PollIntervalMs int `yaml:"poll_interval_ms"`

	// MinRawSamples is the noise floor for unrecognised captures.
	MinRawSamples int `yaml:"min_raw_samples"`
}

// SendConfig contains transmit loop settings.
type SendConfig struct {
	// RepeatGapMs is the silence between repeated transmissions.
	RepeatGapMs int `yaml:"repeat_gap_ms"`
}

// DatabaseConfig contains SQLite settings for the activity journal.
type DatabaseConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings for event publishing.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB connection settings for activity telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from the YAML file at path, applies defaults
// for absent fields, then environment variable overrides, then validates.
//
// Environment overrides follow the pattern TVWIZ_SECTION_KEY, for
// example TVWIZ_SERIAL_PORT or TVWIZ_MQTT_PASSWORD.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Transport: TransportConfig{
			Type: "serial",
		},
		Serial: SerialConfig{
			Port: "/dev/ttyUSB0",
			Baud: 115200,
		},
		Hardware: HardwareConfig{
			Driver: "sim",
		},
		Learn: LearnConfig{
			DefaultTimeoutMs: 15000,
			PollIntervalMs:   5,
			MinRawSamples:    12,
		},
		Send: SendConfig{
			RepeatGapMs: 80,
		},
		Database: DatabaseConfig{
			Path:        "./data/tvwiz.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "tvwiz-controller",
			},
			QoS: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: TVWIZ_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TVWIZ_TRANSPORT_TYPE"); v != "" {
		cfg.Transport.Type = v
	}
	if v := os.Getenv("TVWIZ_SERIAL_PORT"); v != "" {
		cfg.Serial.Port = v
	}
	if v := os.Getenv("TVWIZ_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TVWIZ_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("TVWIZ_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("TVWIZ_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("TVWIZ_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	switch c.Transport.Type {
	case "serial":
		if c.Serial.Port == "" {
			errs = append(errs, "serial.port is required for the serial transport")
		}
		if c.Serial.Baud <= 0 {
			errs = append(errs, "serial.baud must be positive")
		}
	case "stdio":
		// No transport settings needed.
	default:
		errs = append(errs, fmt.Sprintf("transport.type %q is not supported (serial, stdio)", c.Transport.Type))
	}

	if c.Hardware.Driver == "" {
		errs = append(errs, "hardware.driver is required")
	}

	if c.Learn.DefaultTimeoutMs <= 0 {
		errs = append(errs, "learn.default_timeout_ms must be positive")
	}
	if c.Learn.PollIntervalMs <= 0 {
		errs = append(errs, "learn.poll_interval_ms must be positive")
	}
	if c.Send.RepeatGapMs < 0 {
		errs = append(errs, "send.repeat_gap_ms must not be negative")
	}

	if c.Database.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required when the journal is enabled")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when MQTT is enabled")
	}

	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when InfluxDB is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetDefaultLearnTimeout returns the default learn timeout as a Duration.
func (c *Config) GetDefaultLearnTimeout() time.Duration {
	return time.Duration(c.Learn.DefaultTimeoutMs) * time.Millisecond
}

// GetPollInterval returns the decoder poll interval as a Duration.
func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Learn.PollIntervalMs) * time.Millisecond
}

// GetRepeatGap returns the inter-repeat silence gap as a Duration.
func (c *Config) GetRepeatGap() time.Duration {
	return time.Duration(c.Send.RepeatGapMs) * time.Millisecond
}
