// TVWIZ IR Controller daemon.
//
// tvwizd speaks a line-oriented JSON protocol over a serial port or
// stdio: hosts send commands (ping, learn, send, define, define_raw,
// erase, list) and receive one-line JSON responses. Learned and defined
// codes live in a fixed-capacity in-memory store; activity is fanned
// out to the optional journal, MQTT, and telemetry sinks.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/snijdersandreu/TVWIZ-IR-Controller/migrations"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/engine"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/events"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/hardware"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/config"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/database"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/influxdb"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/logging"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/mqtt"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/ir"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/journal"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/protocol"
	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/telemetry"
	serialtransport "github.com/snijdersandreu/TVWIZ-IR-Controller/internal/transport/serial"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error lets main handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting TVWIZ IR controller",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// With the stdio transport, stdout carries the protocol; force logs
	// onto stderr so the host parser never sees them.
	if cfg.Transport.Type == "stdio" {
		cfg.Logging.Output = "stderr"
	}

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Core state: store, hardware, engine, dispatcher.
	store := ir.NewStore()

	rx, tx, err := buildHardware(cfg)
	if err != nil {
		return fmt.Errorf("initialising hardware: %w", err)
	}
	log.Info("hardware initialised", "driver", cfg.Hardware.Driver)

	eng := engine.New(rx, tx, engine.Options{
		PollInterval:  cfg.GetPollInterval(),
		RepeatGap:     cfg.GetRepeatGap(),
		MinRawSamples: cfg.Learn.MinRawSamples,
		Logger:        log.With("component", "engine"),
	})

	dispatcher := protocol.NewDispatcher(store, eng)
	dispatcher.SetLogger(log.With("component", "protocol"))
	dispatcher.SetDefaultLearnTimeout(cfg.GetDefaultLearnTimeout())

	// Activity journal (optional).
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		log.Info("database connected", "path", cfg.Database.Path)

		if migrateErr := db.Migrate(ctx); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		log.Info("database migrations complete")

		repo := journal.NewSQLiteRepository(db.DB)

		// Report how much history the journal already holds.
		history, listErr := repo.List(ctx, journal.Filter{Limit: 1})
		if listErr != nil {
			return fmt.Errorf("reading journal: %w", listErr)
		}
		log.Info("journal ready", "events", history.Total)

		dispatcher.AddSink(journal.NewRecorder(repo, log.With("component", "journal")))
	} else {
		log.Info("activity journal disabled")
	}

	// Event broadcasting (optional).
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		dispatcher.AddSink(events.NewPublisher(mqttClient, log.With("component", "events")))
	} else {
		log.Info("MQTT disabled")
	}

	// Telemetry (optional).
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		dispatcher.AddSink(telemetry.NewRecorder(influxClient, store))
	} else {
		log.Info("InfluxDB disabled")
	}

	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	// Open the command transport and run the session loop until the
	// transport closes or a shutdown signal arrives.
	rw, closeTransport, err := openTransport(cfg)
	if err != nil {
		return fmt.Errorf("opening transport: %w", err)
	}
	if closeTransport != nil {
		defer func() {
			log.Info("closing transport")
			if closeErr := closeTransport(); closeErr != nil {
				log.Error("error closing transport", "error", closeErr)
			}
		}()
	}
	log.Info("transport ready", "type", cfg.Transport.Type)

	session := protocol.NewSession(rw, dispatcher)
	session.SetLogger(log.With("component", "session"))

	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	log.Info("TVWIZ IR controller stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses TVWIZ_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("TVWIZ_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildHardware constructs the receiver and transmitter halves for the
// configured driver.
func buildHardware(cfg *config.Config) (hardware.Receiver, hardware.Transmitter, error) {
	switch cfg.Hardware.Driver {
	case "sim":
		sim := hardware.NewSimulator()
		return sim, sim, nil
	default:
		return nil, nil, fmt.Errorf("unknown hardware driver %q", cfg.Hardware.Driver)
	}
}

// stdioTransport pairs stdin and stdout into one io.ReadWriter.
type stdioTransport struct {
	io.Reader
	io.Writer
}

// openTransport opens the configured command transport. The returned
// close function is nil for stdio.
func openTransport(cfg *config.Config) (io.ReadWriter, func() error, error) {
	switch cfg.Transport.Type {
	case "serial":
		port, err := serialtransport.Open(cfg.Serial)
		if err != nil {
			return nil, nil, err
		}
		return port, port.Close, nil
	case "stdio":
		return stdioTransport{Reader: os.Stdin, Writer: os.Stdout}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown transport type %q", cfg.Transport.Type)
	}
}

// healthCheck verifies the optional infrastructure connections. Any of
// the clients may be nil when its feature is disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if db != nil {
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}
