package mqtt

import "fmt"

// Topic prefixes for the controller's MQTT surface.
//
// Scheme: tvwiz/{category}[/{detail}]
const (
	// TopicPrefix is the base for all controller topics.
	TopicPrefix = "tvwiz"

	// TopicPrefixEvent is the base for code activity events.
	TopicPrefixEvent = "tvwiz/event"
)

// Topics provides builders for controller MQTT topics. Using these
// helpers keeps topic naming consistent across publishers and tests.
//
//	topics := mqtt.Topics{}
//	topics.Event("code_sent")  // "tvwiz/event/code_sent"
type Topics struct{}

// Status returns the retained controller status topic.
//
// Example: tvwiz/status
func (Topics) Status() string {
	return TopicPrefix + "/status"
}

// Event returns the topic for a code activity event.
//
// Event kinds: code_learned, code_defined, code_sent, code_erased.
//
// Example: tvwiz/event/code_learned
func (Topics) Event(kind string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixEvent, kind)
}

// CodeState returns the retained per-code state topic.
//
// Example: tvwiz/code/tv_power
func (Topics) CodeState(name string) string {
	return fmt.Sprintf("%s/code/%s", TopicPrefix, name)
}
