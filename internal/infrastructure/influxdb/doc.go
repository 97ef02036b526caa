// Package influxdb provides the telemetry client for the controller,
// built on the official InfluxDB v2 Go client.
//
// Two measurements are written:
//
//	ir_send      one point per completed transmission, tagged by code
//	             name and type, with repeat count and duration fields
//	ir_activity  one point per store mutation (learned, defined,
//	             erased), with store occupancy
//
// Writes use the non-blocking batched API so telemetry never delays the
// command loop; async write failures surface through the SetOnError
// callback and are logged rather than propagated.
//
// Telemetry is optional: when disabled in configuration, Connect
// returns ErrDisabled and the daemon runs without it.
package influxdb
