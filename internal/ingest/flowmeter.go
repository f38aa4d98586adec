package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/config"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

const (
	connectTimeout = 10 * time.Second
	handleTimeout  = 15 * time.Second
)

// FlowmeterRecorder stores totalizer readings and rebuilds the derived production.
type FlowmeterRecorder interface {
	RecordFlowmeter(ctx context.Context, reading *domain.FlowmeterReading) error
	Rebuild(ctx context.Context) ([]domain.DailyProduction, error)
}

// flowmeterMessage is the JSON payload published by the plant totalizer.
// Either date or timestamp identifies the day; without both the receive
// time is used.
type flowmeterMessage struct {
	Date      string   `json:"date"`
	Timestamp string   `json:"timestamp"`
	Value     *float64 `json:"value"`
	Operator  string   `json:"operator"`
	Notes     string   `json:"notes"`
}

// Subscriber feeds flowmeter readings received over MQTT into the production log.
type Subscriber struct {
	cfg      config.MQTTConfig
	recorder FlowmeterRecorder
	client   mqtt.Client
	now      func() time.Time
}

func NewSubscriber(cfg config.MQTTConfig, recorder FlowmeterRecorder) *Subscriber {
	s := &Subscriber{cfg: cfg, recorder: recorder, now: time.Now}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "ro-ingestor-" + uuid.NewString()[:8]
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(s.onConnect).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn().Err(err).Msg("mqtt connection lost")
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username).SetPassword(cfg.Password)
	}

	s.client = mqtt.NewClient(opts)
	return s
}

// Run connects to the broker and blocks until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect to %s timed out", s.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}

	log.Info().Str("broker", s.cfg.Broker).Str("topic", s.cfg.Topic).Msg("flowmeter ingestor running")
	<-ctx.Done()

	s.client.Disconnect(250)
	log.Info().Msg("flowmeter ingestor stopped")
	return nil
}

// onConnect (re)subscribes after every connect so auto-reconnects keep the subscription.
func (s *Subscriber) onConnect(c mqtt.Client) {
	token := c.Subscribe(s.cfg.Topic, byte(s.cfg.QoS), s.onMessage)
	if token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", s.cfg.Topic).Msg("mqtt subscribe failed")
		return
	}
	log.Info().Str("topic", s.cfg.Topic).Msg("subscribed")
}

func (s *Subscriber) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := s.Handle(ctx, msg.Payload()); err != nil {
		log.Error().Err(err).Str("topic", msg.Topic()).Msg("ingest failed")
	}
}

// Handle decodes one payload, records it and rebuilds daily production.
func (s *Subscriber) Handle(ctx context.Context, payload []byte) error {
	reading, err := s.decode(payload)
	if err != nil {
		return err
	}

	if err := s.recorder.RecordFlowmeter(ctx, reading); err != nil {
		return fmt.Errorf("record flowmeter: %w", err)
	}

	rows, err := s.recorder.Rebuild(ctx)
	if errors.Is(err, domain.ErrPrecondition) {
		log.Debug().Msg("production rebuild waiting for a second reading")
		return nil
	}
	if err != nil {
		return fmt.Errorf("rebuild production: %w", err)
	}

	log.Info().
		Str("date", reading.ReadingDate.String()).
		Float64("value", reading.Value).
		Int("days", len(rows)).
		Msg("flowmeter reading ingested")
	return nil
}

func (s *Subscriber) decode(payload []byte) (*domain.FlowmeterReading, error) {
	var msg flowmeterMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: malformed flowmeter payload: %v", domain.ErrInvalidInput, err)
	}
	if msg.Value == nil {
		return nil, fmt.Errorf("%w: flowmeter payload without value", domain.ErrInvalidInput)
	}

	reading := &domain.FlowmeterReading{
		Value:    *msg.Value,
		Operator: strings.TrimSpace(msg.Operator),
		Notes:    msg.Notes,
	}
	if reading.Operator == "" {
		reading.Operator = "mqtt"
	}

	switch {
	case msg.Date != "":
		d, err := domain.ParseDate(msg.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		reading.ReadingDate = d
	case msg.Timestamp != "":
		ts, err := time.Parse(time.RFC3339, msg.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q", domain.ErrInvalidInput, msg.Timestamp)
		}
		reading.ReadingDate = domain.NewDate(ts)
	default:
		reading.ReadingDate = domain.NewDate(s.now())
	}

	return reading, nil
}
