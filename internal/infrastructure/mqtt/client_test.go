package mqtt

import (
	"strings"
	"testing"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/config"
)

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"status", topics.Status(), "tvwiz/status"},
		{"event learned", topics.Event("code_learned"), "tvwiz/event/code_learned"},
		{"event sent", topics.Event("code_sent"), "tvwiz/event/code_sent"},
		{"code state", topics.CodeState("tv_power"), "tvwiz/code/tv_power"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     1883,
			ClientID: "tvwiz-test",
		},
		Auth: config.MQTTAuthConfig{
			Username: "tvwiz",
			Password: "secret",
		},
		QoS: 1,
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://broker.local:1883" {
		t.Errorf("broker URL = %q, want tcp://broker.local:1883", got)
	}
	if opts.ClientID != "tvwiz-test" {
		t.Errorf("client ID = %q, want tvwiz-test", opts.ClientID)
	}
	if opts.Username != "tvwiz" {
		t.Errorf("username = %q, want tvwiz", opts.Username)
	}
	if !opts.AutoReconnect {
		t.Error("auto-reconnect should be enabled")
	}
}

func TestBuildClientOptionsTLS(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     8883,
			TLS:      true,
			ClientID: "tvwiz-test",
		},
	}

	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("broker scheme = %q, want ssl", got)
	}
	if opts.TLSConfig == nil {
		t.Fatal("TLS config not set")
	}
}

func TestConfigureLWT(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "broker.local", Port: 1883, ClientID: "tvwiz-test"},
	}
	opts := buildClientOptions(cfg)
	configureLWT(opts, "tvwiz-test")

	if opts.WillTopic != "tvwiz/status" {
		t.Errorf("will topic = %q, want tvwiz/status", opts.WillTopic)
	}
	payload := string(opts.WillPayload)
	if !strings.Contains(payload, `"status":"offline"`) {
		t.Errorf("will payload missing offline status: %s", payload)
	}
	if !strings.Contains(payload, `"reason":"unexpected_disconnect"`) {
		t.Errorf("will payload missing disconnect reason: %s", payload)
	}
	if !opts.WillRetained {
		t.Error("will message should be retained")
	}
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("tvwiz-test")
	if !strings.Contains(online, `"status":"online"`) {
		t.Errorf("online payload: %s", online)
	}
	if !strings.Contains(online, `"client_id":"tvwiz-test"`) {
		t.Errorf("online payload missing client_id: %s", online)
	}

	offline := buildOfflinePayload("tvwiz-test")
	if !strings.Contains(offline, `"reason":"graceful_shutdown"`) {
		t.Errorf("offline payload: %s", offline)
	}
}

func TestPublishValidation(t *testing.T) {
	c := &Client{}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{
			name:    "empty topic",
			topic:   "",
			payload: []byte("{}"),
			qos:     1,
			wantErr: ErrInvalidTopic,
		},
		{
			name:    "invalid qos",
			topic:   "tvwiz/status",
			payload: []byte("{}"),
			qos:     3,
			wantErr: ErrInvalidQoS,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, false)
			if err != tt.wantErr {
				t.Errorf("Publish error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublishCodeStateNotConnected(t *testing.T) {
	c := &Client{}

	// The topic is well-formed, so the only failure on a disconnected
	// client is the connection check.
	if err := c.PublishCodeState("tv_power", []byte("{}")); err != ErrNotConnected {
		t.Errorf("PublishCodeState error = %v, want ErrNotConnected", err)
	}
}
