package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"ir_climate/internal/logger"
	"ir_climate/internal/models"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
	topics Topics
	log    *logger.Logger
}

// NewRealPublisher connects to broker. The client reconnects on its own after
// the first connection is established.
func NewRealPublisher(broker, clientID, prefix string, log *logger.Logger) (*RealPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warnw("mqtt_connection_lost", "err", err)
		}).
		SetOnConnectHandler(func(_ paho.Client) {
			log.Infow("mqtt_connected", "broker", broker)
		})

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{
		client: client,
		topics: NewTopics(prefix),
		log:    log,
	}, nil
}

func (p *RealPublisher) Announce(a Announcement) error {
	payload, err := FormatAnnouncement(a)
	if err != nil {
		return fmt.Errorf("format announcement: %w", err)
	}
	return p.publish(p.topics.Announce, payload)
}

func (p *RealPublisher) PublishState(s models.ApplianceState) error {
	payload, err := FormatState(s)
	if err != nil {
		return fmt.Errorf("format state: %w", err)
	}
	return p.publish(p.topics.State, payload)
}

// publish sends a retained QoS 1 message; late subscribers see the latest value.
func (p *RealPublisher) publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
