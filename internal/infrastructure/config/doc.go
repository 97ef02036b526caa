// Package config loads and validates the controller's configuration.
//
// Configuration is layered: built-in defaults, then the YAML file, then
// TVWIZ_* environment variable overrides. Validation runs last so every
// layer is checked together.
//
// # Usage
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//
// Secrets (MQTT password, InfluxDB token) should come from the
// environment rather than the YAML file on shared systems.
package config
