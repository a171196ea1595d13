package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/eclipse/paho.golang/paho"
)

// DefaultConnectTimeout bounds the broker dial and CONNECT handshake.
const DefaultConnectTimeout = 10 * time.Second

// MQTTConfig describes the broker subscription.
type MQTTConfig struct {
	Broker         string
	Topic          string
	ClientID       string
	QoS            int
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
}

// mqttSource turns every message published on the topic into one or more
// lines. Payloads with several newline-separated readings are split.
type mqttSource struct {
	client       *paho.Client
	ch           chan string
	done         chan struct{}
	maxLineBytes int

	mu       sync.Mutex
	err      error
	stopOnce sync.Once

	sendMu  sync.RWMutex
	stopped bool
}

func newMQTTSource(conf Config) *mqttSource {
	conf = conf.withDefaults()
	return &mqttSource{
		ch:           make(chan string, conf.BufferSize),
		done:         make(chan struct{}),
		maxLineBytes: conf.MaxLineBytes,
	}
}

// NewMQTTSource connects to the broker and subscribes to the topic.
func NewMQTTSource(ctx context.Context, mqttConf MQTTConfig, conf Config) (LineSource, error) {
	addr, err := brokerAddress(mqttConf.Broker)
	if err != nil {
		return nil, err
	}

	if mqttConf.ConnectTimeout <= 0 {
		mqttConf.ConnectTimeout = DefaultConnectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, mqttConf.ConnectTimeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial broker %q: %w", addr, err)
	}

	s := newMQTTSource(conf)
	s.client = paho.NewClient(paho.ClientConfig{
		Conn:     conn,
		ClientID: mqttConf.ClientID,
		OnClientError: func(err error) {
			s.stop(fmt.Errorf("mqtt client error: %w", err))
		},
		OnServerDisconnect: func(d *paho.Disconnect) {
			s.stop(fmt.Errorf("mqtt server disconnected, reason code %d", d.ReasonCode))
		},
	})
	s.client.AddOnPublishReceived(func(pr paho.PublishReceived) (bool, error) {
		s.handlePayload(pr.Packet.Payload)
		return true, nil
	})

	connack, err := s.client.Connect(dialCtx, &paho.Connect{
		ClientID:   mqttConf.ClientID,
		KeepAlive:  uint16(mqttConf.KeepAlive / time.Second),
		CleanStart: true,
	})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to broker %q: %w", addr, err)
	}
	if connack.ReasonCode != 0 {
		_ = conn.Close()
		return nil, fmt.Errorf("broker %q refused connection, reason code %d", addr, connack.ReasonCode)
	}

	if _, err := s.client.Subscribe(dialCtx, &paho.Subscribe{
		Subscriptions: []paho.SubscribeOptions{
			{Topic: mqttConf.Topic, QoS: byte(mqttConf.QoS)},
		},
	}); err != nil {
		_ = s.client.Disconnect(&paho.Disconnect{ReasonCode: 0})
		return nil, fmt.Errorf("failed to subscribe to %q: %w", mqttConf.Topic, err)
	}

	return s, nil
}

func brokerAddress(broker string) (string, error) {
	u, err := url.Parse(broker)
	if err != nil {
		return "", fmt.Errorf("invalid broker url %q: %w", broker, err)
	}
	switch u.Scheme {
	case "tcp", "mqtt":
	default:
		return "", fmt.Errorf("unsupported broker scheme %q", u.Scheme)
	}
	if u.Port() == "" {
		return net.JoinHostPort(u.Hostname(), "1883"), nil
	}
	return u.Host, nil
}

func (s *mqttSource) handlePayload(payload []byte) {
	// Held while sending so stop cannot close the channel under a sender.
	s.sendMu.RLock()
	defer s.sendMu.RUnlock()
	if s.stopped {
		return
	}

	for _, raw := range bytes.Split(payload, []byte("\n")) {
		raw = bytes.TrimRight(raw, "\r")
		if len(raw) == 0 {
			continue
		}
		if len(raw) > s.maxLineBytes {
			metricLinesDroppedTotal.WithLabelValues(s.Name(), "too_long").Inc()
			continue
		}
		metricLinesReadTotal.WithLabelValues(s.Name()).Inc()
		select {
		case s.ch <- string(raw):
		case <-s.done:
			return
		}
	}
}

// stop records the first reason and closes the line channel.
func (s *mqttSource) stop(err error) {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()

		close(s.done)

		s.sendMu.Lock()
		s.stopped = true
		close(s.ch)
		s.sendMu.Unlock()
	})
}

func (s *mqttSource) Lines() <-chan string { return s.ch }

func (s *mqttSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *mqttSource) Close() error {
	s.stop(ErrSourceClosed)
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(&paho.Disconnect{ReasonCode: 0})
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (s *mqttSource) Name() string { return "mqtt" }
