// Package serial opens the serial line the controller speaks its
// protocol over, wrapping tarm/serial behind an io.ReadWriteCloser.
package serial

import (
	"fmt"

	tarm "github.com/tarm/serial"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/config"
)

// Port is an open serial connection. It satisfies io.ReadWriteCloser
// and is handed directly to the protocol session.
type Port struct {
	port *tarm.Port
	name string
}

// Open opens the configured serial port.
//
// Parameters:
//   - cfg: Serial section of the controller configuration
//
// Returns:
//   - *Port: Open port ready for the session loop
//   - error: If the device cannot be opened
func Open(cfg config.SerialConfig) (*Port, error) {
	port, err := tarm.OpenPort(&tarm.Config{
		Name: cfg.Port,
		Baud: cfg.Baud,
	})
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", cfg.Port, err)
	}

	return &Port{port: port, name: cfg.Port}, nil
}

// Read reads from the serial line.
func (p *Port) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes to the serial line.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the port.
func (p *Port) Close() error {
	return p.port.Close()
}

// Name returns the device path the port was opened on.
func (p *Port) Name() string {
	return p.name
}
