// Package mqtt provides the controller's event publishing client, built
// on paho.mqtt.golang.
//
// The controller publishes only; commands arrive over the line
// transport, never over MQTT. The broker surface is:
//
//	tvwiz/status             retained controller online/offline status
//	tvwiz/event/{kind}       code activity events (not retained)
//	tvwiz/code/{name}        retained per-code state
//
// A Last Will message on tvwiz/status lets subscribers distinguish a
// crashed controller from a graceful shutdown, which publishes its own
// retained offline status before disconnecting.
//
// The client auto-reconnects with exponential backoff; publishes while
// disconnected fail fast with ErrNotConnected rather than queueing.
package mqtt
