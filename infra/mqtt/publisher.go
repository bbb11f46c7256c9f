package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/kilianp07/solarsim/core/metrics"
	"github.com/kilianp07/solarsim/infra/logger"
)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// EventPublisher is a metrics sink that publishes roster loads and
// simulation results as JSON messages.
type EventPublisher struct {
	cli    pahoClient
	cfg    Config
	logger logger.Logger
}

// simulationMessage is the payload published under <prefix>/simulation/<kind>.
type simulationMessage struct {
	Kind       string      `json:"kind"`
	Days       int         `json:"days"`
	Plants     int         `json:"plants"`
	OutputKWh  json.Number `json:"outputInKwh"`
	DurationMS float64     `json:"durationMs"`
	Timestamp  int64       `json:"timestamp"`
}

// rosterMessage is the payload published under <prefix>/roster.
type rosterMessage struct {
	LoadID    string `json:"loadId"`
	Plants    int    `json:"plants"`
	Timestamp int64  `json:"timestamp"`
}

// NewEventPublisher connects to the broker and announces the publisher as
// online. The broker publishes "offline" on the status topic when the
// connection drops.
func NewEventPublisher(cfg Config) (*EventPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_publisher")
	p := &EventPublisher{cfg: cfg, logger: log}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
		c.Publish(cfg.StatusTopic(), cfg.QoS, true, "online")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	p.cli = c
	return p, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	opts.SetWill(cfg.StatusTopic(), "offline", cfg.QoS, true)
	return opts, nil
}

// RecordSimulation publishes the projection to <prefix>/simulation/<kind>.
func (p *EventPublisher) RecordSimulation(ev coremetrics.SimulationEvent) error {
	msg := simulationMessage{
		Kind:       ev.Kind,
		Days:       ev.Days,
		Plants:     ev.Plants,
		OutputKWh:  json.Number(ev.OutputKWh.String()),
		DurationMS: float64(ev.Duration.Microseconds()) / 1000,
		Timestamp:  ev.Time.UnixMilli(),
	}
	return p.publish(fmt.Sprintf("%s/simulation/%s", p.cfg.TopicPrefix, ev.Kind), msg)
}

// RecordRosterLoad publishes the roster replacement to <prefix>/roster.
func (p *EventPublisher) RecordRosterLoad(ev coremetrics.RosterLoadEvent) error {
	msg := rosterMessage{LoadID: ev.LoadID, Plants: ev.Plants, Timestamp: ev.Time.UnixMilli()}
	return p.publish(p.cfg.TopicPrefix+"/roster", msg)
}

func (p *EventPublisher) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	backoff := time.Duration(p.cfg.BackoffMS) * time.Millisecond
	var publishErr error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		token := p.cli.Publish(topic, p.cfg.QoS, p.cfg.Retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Debugf("published to %s", topic)
			return nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.cfg.MaxRetries {
			time.Sleep(backoff * time.Duration(1<<attempt))
		}
	}
	return fmt.Errorf("publish %s: %w", topic, publishErr)
}

// Close marks the publisher offline and disconnects.
func (p *EventPublisher) Close() error {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Publish(p.cfg.StatusTopic(), p.cfg.QoS, true, "offline").Wait()
		p.cli.Disconnect(250)
	}
	return nil
}
