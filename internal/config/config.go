package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 800
	DefaultHeight        = 800
	DefaultDt            = dynamo.Hour
	DefaultPreviewHours  = 300
	DefaultSteps         = 24 * 365
	DefaultReferenceBody = "Earth"
	DefaultRocketMass    = 480000
	DefaultRocketImpulse = 30000
	DefaultRocketColor   = "red"
	DefaultTable         = "solar"
	DefaultLogLevel      = "info"
	DefaultStore         = "orrery.db"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Table  string        `yaml:"table"`
	Bodies []bodies.Spec `yaml:"bodies,omitempty"`
	Canvas CanvasConfig  `yaml:"canvas"`
	Dt     float64       `yaml:"dt"`
	Steps  int           `yaml:"steps"`
	// PreviewHorizon is the simulated span of the trajectory preview in seconds.
	PreviewHorizon float64      `yaml:"preview_horizon"`
	ReferenceBody  string       `yaml:"reference_body"`
	Rocket         RocketConfig `yaml:"rocket"`
	Tuning         TuningConfig `yaml:"tuning"`
	LogLevel       string       `yaml:"log_level"`
	Store          string       `yaml:"store"`
	Telemetry      InfluxConfig `yaml:"telemetry"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RocketConfig struct {
	Mass    float64 `yaml:"mass"`
	Impulse float64 `yaml:"impulse"`
	Color   string  `yaml:"color"`
}

// TuningConfig mirrors physics.Tuning with the hit radius in AU.
type TuningConfig struct {
	ProjectileExponent float64 `yaml:"projectile_exponent"`
	MinorBodyBias      float64 `yaml:"minor_body_bias"`
	InfluenceBias      float64 `yaml:"influence_bias"`
	HitRadiusAU        float64 `yaml:"hit_radius_au"`
}

// InfluxConfig enables the InfluxDB sink when URL is set.
type InfluxConfig struct {
	URL    string `yaml:"url,omitempty"`
	Token  string `yaml:"token,omitempty"`
	Org    string `yaml:"org,omitempty"`
	Bucket string `yaml:"bucket,omitempty"`
}

func (c InfluxConfig) Enabled() bool { return c.URL != "" }

func DefaultConfig() *Config {
	t := physics.DefaultTuning()
	return &Config{
		Table:          DefaultTable,
		Canvas:         CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dt:             DefaultDt,
		Steps:          DefaultSteps,
		PreviewHorizon: DefaultPreviewHours * dynamo.Hour,
		ReferenceBody:  DefaultReferenceBody,
		Rocket: RocketConfig{
			Mass:    DefaultRocketMass,
			Impulse: DefaultRocketImpulse,
			Color:   DefaultRocketColor,
		},
		Tuning: TuningConfig{
			ProjectileExponent: t.ProjectileExponent,
			MinorBodyBias:      t.MinorBodyBias,
			InfluenceBias:      t.InfluenceBias,
			HitRadiusAU:        t.HitRadius / dynamo.AU,
		},
		LogLevel: DefaultLogLevel,
		Store:    DefaultStore,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path on cfg. Keys missing from the file
// keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Specs returns the inline bodies when present, else the named table.
func (c *Config) Specs() ([]bodies.Spec, error) {
	if len(c.Bodies) > 0 {
		return c.Bodies, nil
	}
	table, ok := bodies.Tables[c.Table]
	if !ok {
		return nil, fmt.Errorf("%w: unknown body table %q", ErrInvalid, c.Table)
	}
	return table(), nil
}

func (c *Config) PhysicsTuning() physics.Tuning {
	return physics.Tuning{
		ProjectileExponent: c.Tuning.ProjectileExponent,
		MinorBodyBias:      c.Tuning.MinorBodyBias,
		InfluenceBias:      c.Tuning.InfluenceBias,
		HitRadius:          c.Tuning.HitRadiusAU * dynamo.AU,
	}
}

// PreviewSteps is the number of dt steps that cover PreviewHorizon, rounded up.
func (c *Config) PreviewSteps() int {
	if c.Dt <= 0 || c.PreviewHorizon <= 0 {
		return 0
	}
	return int(math.Ceil(c.PreviewHorizon/c.Dt - 1e-9))
}

func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Dt <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %v", c.Dt))
	}
	if c.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", c.Steps))
	}
	if c.PreviewHorizon < 0 {
		errs = append(errs, fmt.Errorf("preview_horizon must not be negative, got %v", c.PreviewHorizon))
	}
	if c.Rocket.Mass <= 0 {
		errs = append(errs, fmt.Errorf("rocket mass must be positive, got %v", c.Rocket.Mass))
	}
	if c.Tuning.ProjectileExponent <= 0 {
		errs = append(errs, fmt.Errorf("projectile_exponent must be positive, got %v", c.Tuning.ProjectileExponent))
	}
	if c.Tuning.InfluenceBias < 0 || c.Tuning.InfluenceBias > 1 {
		errs = append(errs, fmt.Errorf("influence_bias must be in [0,1], got %v", c.Tuning.InfluenceBias))
	}
	if c.Tuning.HitRadiusAU < 0 {
		errs = append(errs, fmt.Errorf("hit_radius_au must not be negative, got %v", c.Tuning.HitRadiusAU))
	}
	specs, err := c.Specs()
	if err != nil {
		return errors.Join(append(errs, err)...)
	}
	if len(specs) == 0 {
		errs = append(errs, dynamo.ErrNoBodies)
	}
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if s.Mass <= 1 {
			errs = append(errs, fmt.Errorf("body %q: mass must exceed 1 kg, got %v", s.Name, s.Mass))
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("body %q declared twice", s.Name))
		}
		seen[s.Name] = true
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
