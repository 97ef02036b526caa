package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteSendMetric records a completed transmission.
//
// The point lands in the ir_send measurement tagged by code name and
// type, with the repeat count and wall-clock duration as fields. Writes
// are non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - codeName: Name of the transmitted code (e.g., "tv_power")
//   - codeType: Protocol name or "RAW"
//   - repeats: Extra transmissions beyond the first
//   - elapsed: Wall-clock time for the full send, gaps included
func (c *Client) WriteSendMetric(codeName, codeType string, repeats int, elapsed time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"ir_send",
		map[string]string{
			"code":      codeName,
			"code_type": codeType,
		},
		map[string]interface{}{
			"repeats":     repeats,
			"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteActivityMetric records a store mutation (learn, define, erase).
//
// Parameters:
//   - action: One of "learned", "defined", "erased"
//   - codeName: Name of the affected code
//   - storeLen: Store occupancy after the mutation
func (c *Client) WriteActivityMetric(action, codeName string, storeLen int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"ir_activity",
		map[string]string{
			"action": action,
			"code":   codeName,
		},
		map[string]interface{}{
			"store_len": storeLen,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
