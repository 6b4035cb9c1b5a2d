package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

const EnvPrefix = "HERSIM_"

type Config struct {
	InstanceID  string            `koanf:"instance_id"`
	Logging     LoggingConfig     `koanf:"logging"`
	Controllers ControllersConfig `koanf:"controllers"`

	Shared    SharedConfig    `koanf:"shared"`
	ScenarioA ScenarioConfig  `koanf:"scenario_a"`
	ScenarioB ScenarioConfig  `koanf:"scenario_b"`
	Reference ReferenceConfig `koanf:"reference"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `koanf:"format"` // "console" | "json"
}

type ControllersConfig struct {
	HTTP   HTTPConfig   `koanf:"http"`
	MQTT   MQTTConfig   `koanf:"mqtt"`
	Modbus ModbusConfig `koanf:"modbus"`
}

type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

type MQTTConfig struct {
	Enabled         bool          `koanf:"enabled"`
	BrokerURL       string        `koanf:"broker_url"`
	ClientID        string        `koanf:"client_id"`
	BaseTopic       string        `koanf:"base_topic"`
	QoS             byte          `koanf:"qos"`
	RetainReport    bool          `koanf:"retain_report"`
	PublishInterval time.Duration `koanf:"publish_interval"`
	Username        string        `koanf:"username"`
	Password        string        `koanf:"password"`
}

type ModbusConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	UnitID  byte   `koanf:"unit_id"`
}

// SharedConfig is flat so that every field has a short env name
// (HERSIM_SHARED_HDD65, HERSIM_SHARED_ELECTRICITY_PRICE, ...).
type SharedConfig struct {
	HDD65                   float64 `koanf:"hdd65"`
	CDD65                   float64 `koanf:"cdd65"`
	NetWallAreaFt2          float64 `koanf:"net_wall_area_ft2"`
	ConditionedFloorAreaFt2 float64 `koanf:"conditioned_floor_area_ft2"`
	AvgCeilingHeightFt      float64 `koanf:"avg_ceiling_height_ft"`
	StoryCount              int     `koanf:"story_count"`
	WindowToWallRatio       float64 `koanf:"window_to_wall_ratio"`
	ElectricityPrice        float64 `koanf:"electricity_price"`
	HeatPumpCOP             float64 `koanf:"heat_pump_cop"`
	CoolingSEER             float64 `koanf:"cooling_seer"`
	ACH50ToNatFactor        float64 `koanf:"ach50_to_nat_factor"`
	OtherSiteKWh            float64 `koanf:"other_site_kwh"`
}

// ScenarioConfig describes one design scenario. Construction, Framing and
// Airtightness name catalog presets; when set they take precedence over the
// matching explicit fields.
type ScenarioConfig struct {
	Name         string `koanf:"name"`
	Construction string `koanf:"construction"`
	Framing      string `koanf:"framing"`
	Airtightness string `koanf:"airtightness"`

	FramingDepthIn       float64 `koanf:"framing_depth_in"`
	CavityInsulation     string  `koanf:"cavity_insulation"`
	ExteriorSheathing    string  `koanf:"exterior_sheathing"`
	InteriorThermalBreak bool    `koanf:"interior_thermal_break"`
	FramingFraction      float64 `koanf:"framing_fraction"`

	WindowU  float64 `koanf:"window_u"`
	CeilingR float64 `koanf:"ceiling_r"`
	ACH50    float64 `koanf:"ach50"`
}

type ReferenceConfig struct {
	FramingDepthIn       float64 `koanf:"framing_depth_in"`
	CavityInsulation     string  `koanf:"cavity_insulation"`
	ExteriorSheathing    string  `koanf:"exterior_sheathing"`
	InteriorThermalBreak bool    `koanf:"interior_thermal_break"`
	WindowU              float64 `koanf:"window_u"`
	CeilingR             float64 `koanf:"ceiling_r"`
	ACH50                float64 `koanf:"ach50"`
}

// DefaultConfig mirrors the engine defaults.
func DefaultConfig() Config {
	in := workbench.DefaultInputs()
	s := in.Shared
	ref := s.Reference

	cfg := Config{
		InstanceID: "default",
		Logging:    LoggingConfig{Level: "info", Format: "console"},
		Controllers: ControllersConfig{
			HTTP: HTTPConfig{Enabled: true, Addr: ":8080"},
			MQTT: MQTTConfig{
				BrokerURL:       "tcp://localhost:1883",
				PublishInterval: 1 * time.Second,
			},
			Modbus: ModbusConfig{Addr: "127.0.0.1:1502", UnitID: 1},
		},
		Shared: SharedConfig{
			HDD65:                   s.Climate.HeatingDegreeDays65,
			CDD65:                   s.Climate.CoolingDegreeDays65,
			NetWallAreaFt2:          s.Geometry.NetWallAreaFt2,
			ConditionedFloorAreaFt2: s.Geometry.ConditionedFloorAreaFt2,
			AvgCeilingHeightFt:      s.Geometry.AvgCeilingHeightFt,
			StoryCount:              s.Geometry.StoryCount,
			WindowToWallRatio:       s.Geometry.WindowToWallRatio,
			ElectricityPrice:        s.Economics.ElectricityPricePerKWh,
			HeatPumpCOP:             s.HVAC.HeatPumpCOP,
			CoolingSEER:             s.HVAC.CoolingSEER,
			ACH50ToNatFactor:        s.ACH50ToNatFactor,
			OtherSiteKWh:            s.OtherSiteKWh,
		},
		ScenarioA: scenarioConfig(in.A),
		ScenarioB: scenarioConfig(in.B),
		Reference: ReferenceConfig{
			FramingDepthIn:       ref.Wall.FramingDepthIn,
			CavityInsulation:     ref.Wall.CavityInsulation.String(),
			ExteriorSheathing:    ref.Wall.ExteriorSheathing.String(),
			InteriorThermalBreak: ref.Wall.InteriorThermalBreak,
			WindowU:              ref.WindowU,
			CeilingR:             ref.CeilingR,
			ACH50:                ref.ACH50,
		},
	}
	return cfg
}

func scenarioConfig(s envelope.ScenarioInputs) ScenarioConfig {
	return ScenarioConfig{
		Name:                 s.Name,
		FramingDepthIn:       s.Wall.FramingDepthIn,
		CavityInsulation:     s.Wall.CavityInsulation.String(),
		ExteriorSheathing:    s.Wall.ExteriorSheathing.String(),
		InteriorThermalBreak: s.Wall.InteriorThermalBreak,
		FramingFraction:      s.Wall.FramingFraction,
		WindowU:              s.WindowU,
		CeilingR:             s.CeilingR,
		ACH50:                s.ACH50,
	}
}

// LoadConfig layers compiled-in defaults, the optional config file and HERSIM_*
// environment variables, in that order.
func LoadConfig(path string) (Config, error) {
	return loadConfig(path, os.Environ)
}

func loadConfig(path string, environ func() []string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return Config{}, err
		}
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyTransform(strings.TrimPrefix(key, EnvPrefix)), value
		},
		EnvironFunc: environ,
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// PORT is common in containers; listen on all interfaces on that port.
	if port := lookupEnv(environ, "PORT"); port != "" {
		cfg.Controllers.HTTP.Addr = ":" + port
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config file missing → defaults and env only
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func lookupEnv(environ func() []string, key string) string {
	for _, kv := range environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// envKeyTransform maps an env name (prefix already stripped) to a koanf path:
// CONTROLLERS_HTTP_ADDR → controllers.http.addr, SCENARIO_A_ACH50 →
// scenario_a.ach50, SHARED_HDD65 → shared.hdd65, LOGGING_LEVEL → logging.level.
func envKeyTransform(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ""
	}

	parts := strings.Split(key, "_")
	switch parts[0] {
	case "controllers":
		// controllers.<name>.<field_with_underscores>
		if len(parts) < 3 {
			return key
		}
		return "controllers." + parts[1] + "." + strings.Join(parts[2:], "_")

	case "scenario":
		// scenario_<a|b>.<field_with_underscores>
		if len(parts) < 3 {
			return key
		}
		return "scenario_" + parts[1] + "." + strings.Join(parts[2:], "_")

	case "shared", "reference", "logging":
		if len(parts) < 2 {
			return key
		}
		return parts[0] + "." + strings.Join(parts[1:], "_")
	}
	return key
}

// Inputs converts the config into validated engine inputs.
func (c Config) Inputs() (workbench.Inputs, error) {
	ref, err := c.Reference.spec()
	if err != nil {
		return workbench.Inputs{}, fmt.Errorf("reference: %w", err)
	}
	a, err := c.ScenarioA.scenario()
	if err != nil {
		return workbench.Inputs{}, fmt.Errorf("scenario a: %w", err)
	}
	b, err := c.ScenarioB.scenario()
	if err != nil {
		return workbench.Inputs{}, fmt.Errorf("scenario b: %w", err)
	}

	s := c.Shared
	in := workbench.Inputs{
		Shared: envelope.SharedInputs{
			Climate: envelope.ClimateData{
				HeatingDegreeDays65: s.HDD65,
				CoolingDegreeDays65: s.CDD65,
			},
			Geometry: envelope.HouseGeometry{
				NetWallAreaFt2:          s.NetWallAreaFt2,
				ConditionedFloorAreaFt2: s.ConditionedFloorAreaFt2,
				AvgCeilingHeightFt:      s.AvgCeilingHeightFt,
				StoryCount:              s.StoryCount,
				WindowToWallRatio:       s.WindowToWallRatio,
			},
			Economics:        envelope.EconomicParams{ElectricityPricePerKWh: s.ElectricityPrice},
			HVAC:             envelope.HVACParams{HeatPumpCOP: s.HeatPumpCOP, CoolingSEER: s.CoolingSEER},
			ACH50ToNatFactor: s.ACH50ToNatFactor,
			OtherSiteKWh:     s.OtherSiteKWh,
			Reference:        ref,
		},
		A: a,
		B: b,
	}
	if err := in.Validate(); err != nil {
		return workbench.Inputs{}, err
	}
	return in, nil
}

func (s ScenarioConfig) scenario() (envelope.ScenarioInputs, error) {
	var wall envelope.WallAssemblyConfig
	if s.Construction != "" {
		w, ok := envelope.Construction(s.Construction)
		if !ok {
			return envelope.ScenarioInputs{}, fmt.Errorf("unknown construction preset %q", s.Construction)
		}
		wall = w
	} else {
		ins, err := envelope.ParseInsulationKind(s.CavityInsulation)
		if err != nil {
			return envelope.ScenarioInputs{}, err
		}
		sh, err := envelope.ParseSheathingKind(s.ExteriorSheathing)
		if err != nil {
			return envelope.ScenarioInputs{}, err
		}
		wall = envelope.WallAssemblyConfig{
			FramingDepthIn:       s.FramingDepthIn,
			CavityInsulation:     ins,
			ExteriorSheathing:    sh,
			InteriorThermalBreak: s.InteriorThermalBreak,
			FramingFraction:      s.FramingFraction,
		}
	}

	if s.Framing != "" {
		d, ok := envelope.FramingDepth(s.Framing)
		if !ok {
			return envelope.ScenarioInputs{}, fmt.Errorf("unknown framing preset %q", s.Framing)
		}
		wall.FramingDepthIn = d
	}

	ach50 := s.ACH50
	if s.Airtightness != "" {
		v, ok := envelope.AirtightnessACH50(s.Airtightness)
		if !ok {
			return envelope.ScenarioInputs{}, fmt.Errorf("unknown airtightness preset %q", s.Airtightness)
		}
		ach50 = v
	}

	return envelope.ScenarioInputs{
		Name:     s.Name,
		Wall:     wall,
		WindowU:  s.WindowU,
		CeilingR: s.CeilingR,
		ACH50:    ach50,
	}, nil
}

func (r ReferenceConfig) spec() (envelope.HERSReferenceSpec, error) {
	ins, err := envelope.ParseInsulationKind(r.CavityInsulation)
	if err != nil {
		return envelope.HERSReferenceSpec{}, err
	}
	sh, err := envelope.ParseSheathingKind(r.ExteriorSheathing)
	if err != nil {
		return envelope.HERSReferenceSpec{}, err
	}
	return envelope.HERSReferenceSpec{
		Wall: envelope.ReferenceWall{
			FramingDepthIn:       r.FramingDepthIn,
			CavityInsulation:     ins,
			ExteriorSheathing:    sh,
			InteriorThermalBreak: r.InteriorThermalBreak,
		},
		WindowU:  r.WindowU,
		CeilingR: r.CeilingR,
		ACH50:    r.ACH50,
	}, nil
}

// AnyControllerEnabled reports whether serve has something to run.
func (c Config) AnyControllerEnabled() bool {
	ctl := c.Controllers
	return ctl.HTTP.Enabled || ctl.MQTT.Enabled || ctl.Modbus.Enabled
}
