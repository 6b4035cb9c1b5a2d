package mqttctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/ports"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

var ErrUnknownField = errors.New("unknown field")

type Config struct {
	// Identity
	InstanceID string

	// MQTT connection
	BrokerURL string
	ClientID  string

	// Topics
	BaseTopic string

	// Behavior
	QoS             byte
	RetainReport    bool
	PublishInterval time.Duration

	Username string
	Password string
}

type Controller struct {
	svc    ports.EstimatorService
	cfg    Config
	logger zerolog.Logger

	client mqtt.Client
}

func New(svc ports.EstimatorService, cfg Config, logger zerolog.Logger) (*Controller, error) {
	// ---- defaults ----

	if cfg.BrokerURL == "" {
		cfg.BrokerURL = "tcp://localhost:1883"
	}

	if cfg.InstanceID == "" {
		return nil, errors.New("mqtt: InstanceID is required")
	}
	if cfg.BaseTopic == "" {
		cfg.BaseTopic = "hersim/" + cfg.InstanceID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "hersim-" + cfg.InstanceID
	}
	if cfg.PublishInterval <= 0 {
		cfg.PublishInterval = 1 * time.Second
	}
	if cfg.QoS > 1 {
		return nil, errors.New("mqtt: QoS must be 0 or 1")
	}
	return &Controller{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (c *Controller) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(c.cfg.BrokerURL).
		SetClientID(c.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second)

	if c.cfg.Username != "" {
		opts.SetUsername(c.cfg.Username)
		opts.SetPassword(c.cfg.Password)
	}

	opts.OnConnect = func(cl mqtt.Client) {
		topic := c.topic("set/+")
		token := cl.Subscribe(topic, c.cfg.QoS, c.onMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			c.logger.Error().Err(err).Str("topic", topic).Msg("subscribe failed")
			return
		}
		c.logger.Info().Str("topic", topic).Msg("subscribed")
	}

	c.client = mqtt.NewClient(opts)
	tok := c.client.Connect()
	tok.Wait()
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	c.logger.Info().Str("broker", c.cfg.BrokerURL).Str("base_topic", c.cfg.BaseTopic).Msg("mqtt connected")

	// Publish loop: a new report each time the inputs change.
	ticker := time.NewTicker(c.cfg.PublishInterval)
	defer ticker.Stop()

	last := c.publishReport()

	for {
		select {
		case <-ctx.Done():
			c.client.Disconnect(250)
			return ctx.Err()

		case <-ticker.C:
			if cur := c.svc.Get(); cur != last {
				last = c.publishReport()
			}
		}
	}
}

type reportDTO struct {
	ReportID   string              `json:"report_id"`
	Inputs     workbench.Inputs    `json:"inputs"`
	Comparison envelope.Comparison `json:"comparison"`
}

// publishReport publishes the current comparison and returns the inputs it was
// computed from.
func (c *Controller) publishReport() workbench.Inputs {
	in, cmp := c.svc.Snapshot()
	dto := reportDTO{
		ReportID:   ulid.Make().String(),
		Inputs:     in,
		Comparison: cmp,
	}
	b, err := json.Marshal(dto)
	if err != nil {
		c.logger.Error().Err(err).Msg("encode report")
		return in
	}
	c.client.Publish(c.topic("report"), c.cfg.QoS, c.cfg.RetainReport, b)
	c.logger.Debug().Str("report_id", dto.ReportID).Msg("report published")
	return in
}

// Command payload format: {"value": ...}
type valueReq[T any] struct {
	Value *T `json:"value"`
}

func (c *Controller) onMessage(_ mqtt.Client, msg mqtt.Message) {
	// topic format: <base>/set/<field>
	t := msg.Topic()
	prefix := strings.TrimRight(c.cfg.BaseTopic, "/") + "/set/"
	if !strings.HasPrefix(t, prefix) {
		return
	}
	field := strings.TrimPrefix(t, prefix)

	if err := c.apply(field, msg.Payload()); err != nil {
		c.logger.Warn().Err(err).Str("field", field).Msg("command dropped")
	}
}

// apply dispatches one set command. Shared fields are bare; scenario fields
// carry an "a_" or "b_" prefix.
func (c *Controller) apply(field string, payload []byte) error {
	switch field {
	case "electricity_price":
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return err
		}
		return c.svc.UpdateShared(func(s *envelope.SharedInputs) { s.Economics.ElectricityPricePerKWh = v })

	case "hdd65":
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return err
		}
		return c.svc.UpdateShared(func(s *envelope.SharedInputs) { s.Climate.HeatingDegreeDays65 = v })

	case "cdd65":
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return err
		}
		return c.svc.UpdateShared(func(s *envelope.SharedInputs) { s.Climate.CoolingDegreeDays65 = v })
	}

	scenario, rest, ok := strings.Cut(field, "_")
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	id, err := workbench.ParseScenarioID(scenario)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	set, err := scenarioSetter(rest, payload)
	if err != nil {
		return err
	}
	return c.svc.UpdateScenario(id, set)
}

func scenarioSetter(field string, payload []byte) (func(*envelope.ScenarioInputs), error) {
	switch field {
	case "ach50":
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return nil, err
		}
		return func(s *envelope.ScenarioInputs) { s.ACH50 = v }, nil

	case "window_u":
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return nil, err
		}
		return func(s *envelope.ScenarioInputs) { s.WindowU = v }, nil

	case "ceiling_r":
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return nil, err
		}
		return func(s *envelope.ScenarioInputs) { s.CeilingR = v }, nil

	case "framing_depth":
		v, err := decodeValueStrict[float64](payload)
		if err != nil {
			return nil, err
		}
		return func(s *envelope.ScenarioInputs) { s.Wall.FramingDepthIn = v }, nil

	case "insulation":
		str, err := decodeValueStrict[string](payload)
		if err != nil {
			return nil, err
		}
		k, err := envelope.ParseInsulationKind(str)
		if err != nil {
			return nil, err
		}
		return func(s *envelope.ScenarioInputs) { s.Wall.CavityInsulation = k }, nil

	case "sheathing":
		str, err := decodeValueStrict[string](payload)
		if err != nil {
			return nil, err
		}
		k, err := envelope.ParseSheathingKind(str)
		if err != nil {
			return nil, err
		}
		return func(s *envelope.ScenarioInputs) { s.Wall.ExteriorSheathing = k }, nil

	case "thermal_break":
		v, err := decodeValueStrict[bool](payload)
		if err != nil {
			return nil, err
		}
		return func(s *envelope.ScenarioInputs) { s.Wall.InteriorThermalBreak = v }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func (c *Controller) topic(suffix string) string {
	return strings.TrimRight(c.cfg.BaseTopic, "/") + "/" + suffix
}

func decodeValueStrict[T any](b []byte) (T, error) {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var req valueReq[T]
	if err := dec.Decode(&req); err != nil {
		return zero, err
	}
	if req.Value == nil {
		return zero, errors.New("missing field 'value'")
	}
	return *req.Value, nil
}
