package ingest

import (
	"context"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Client is the subset of an MQTT client the subscriber needs.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect()
	Subscribe(topic string, qos byte, handler MessageHandler) error
	Unsubscribe(topic string) error
	Publish(topic string, qos byte, retained bool, payload []byte) error
	IsConnected() bool
}

// MessageHandler is called for every message on a subscribed topic.
type MessageHandler func(Message)

// Message is an inbound MQTT message.
type Message interface {
	Topic() string
	Payload() []byte
	Ack()
}

// ClientConfig configures the broker connection.
type ClientConfig struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string
}

type mqttClient struct {
	client pahomqtt.Client
	broker string
	logger *zap.Logger
}

// NewClient creates a paho-backed client that reconnects on its own.
func NewClient(cfg ClientConfig, logger *zap.Logger) Client {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)

	if cfg.ClientID != "" {
		opts.SetClientID(cfg.ClientID)
	} else {
		opts.SetClientID(fmt.Sprintf("sleep-journal-%d", time.Now().Unix()))
	}
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(pahomqtt.Client) {
		logger.Info("connected to MQTT broker", zap.String("broker", cfg.BrokerURL))
	}
	opts.OnConnectionLost = func(_ pahomqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	}
	opts.OnReconnecting = func(pahomqtt.Client, *pahomqtt.ClientOptions) {
		logger.Info("MQTT reconnecting")
	}

	return &mqttClient{
		client: pahomqtt.NewClient(opts),
		broker: cfg.BrokerURL,
		logger: logger,
	}
}

func (m *mqttClient) Connect(ctx context.Context) error {
	m.logger.Info("connecting to MQTT broker", zap.String("broker", m.broker))

	token := m.client.Connect()
	select {
	case <-token.Done():
		if token.Error() != nil {
			return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("connection timeout: %w", ctx.Err())
	}
}

func (m *mqttClient) Disconnect() {
	m.logger.Info("disconnecting from MQTT broker")
	m.client.Disconnect(250)
}

func (m *mqttClient) Subscribe(topic string, qos byte, handler MessageHandler) error {
	token := m.client.Subscribe(topic, qos, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		handler(msg)
	})
	token.Wait()

	if token.Error() != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
	}

	m.logger.Info("subscribed to MQTT topic", zap.String("topic", topic), zap.Uint8("qos", qos))
	return nil
}

func (m *mqttClient) Unsubscribe(topic string) error {
	token := m.client.Unsubscribe(topic)
	token.Wait()

	if token.Error() != nil {
		return fmt.Errorf("failed to unsubscribe from topic %s: %w", topic, token.Error())
	}
	return nil
}

func (m *mqttClient) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := m.client.Publish(topic, qos, retained, payload)
	token.Wait()

	if token.Error() != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, token.Error())
	}

	m.logger.Debug("published message", zap.String("topic", topic), zap.Int("size", len(payload)))
	return nil
}

func (m *mqttClient) IsConnected() bool {
	return m.client.IsConnected()
}
