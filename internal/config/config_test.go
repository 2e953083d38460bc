package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3600.0, cfg.Dt)
	assert.Equal(t, 300*3600.0, cfg.PreviewHorizon)
	assert.Equal(t, 300, cfg.PreviewSteps())
	assert.Equal(t, "Earth", cfg.ReferenceBody)
	assert.Equal(t, 800.0, cfg.Canvas.Width)
	assert.Equal(t, 2.0, cfg.Tuning.ProjectileExponent)
	assert.InDelta(t, 0.02, cfg.Tuning.HitRadiusAU, 1e-15)
	require.NoError(t, cfg.Validate())

	specs, err := cfg.Specs()
	require.NoError(t, err)
	assert.Len(t, specs, len(bodies.SolarSystem()))
}

func TestPreviewStepsCoverHorizon(t *testing.T) {
	cases := []struct {
		dt, horizon float64
		want        int
	}{
		{3600, 300 * 3600, 300},
		{7200, 300 * 3600, 150},
		{6 * 3600, 300 * 3600, 50},
		{7000, 300 * 3600, 155},
		{3600, 0, 0},
		{0, 300 * 3600, 0},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		cfg.Dt, cfg.PreviewHorizon = c.dt, c.horizon
		assert.Equal(t, c.want, cfg.PreviewSteps(), "dt %v horizon %v", c.dt, c.horizon)
	}
}

func TestPhysicsTuning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tuning.HitRadiusAU = 0.5
	tn := cfg.PhysicsTuning()
	assert.InDelta(t, 0.5*dynamo.AU, tn.HitRadius, 1)
	assert.Equal(t, cfg.Tuning.MinorBodyBias, tn.MinorBodyBias)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative canvas", func(c *Config) { c.Canvas.Width = -1 }},
		{"massless rocket", func(c *Config) { c.Rocket.Mass = 0 }},
		{"bias out of range", func(c *Config) { c.Tuning.InfluenceBias = 2 }},
		{"unknown table", func(c *Config) { c.Table = "andromeda" }},
		{"duplicate body", func(c *Config) {
			c.Bodies = []bodies.Spec{{Name: "A", Mass: 2e30}, {Name: "A", Mass: 6e24}}
		}},
		{"negative preview horizon", func(c *Config) { c.PreviewHorizon = -1 }},
		{"massless body", func(c *Config) {
			c.Bodies = []bodies.Spec{{Name: "A", Mass: 0}}
		}},
		{"sub-kilogram body", func(c *Config) {
			c.Bodies = []bodies.Spec{{Name: "Sun", Mass: 1.989e30}, {Name: "Pebble", Mass: 0.5, Distance: bodies.F(2)}}
		}},
		{"one kilogram body", func(c *Config) {
			c.Bodies = []bodies.Spec{{Name: "Sun", Mass: 1.989e30}, {Name: "Pebble", Mass: 1, Distance: bodies.F(2)}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.yaml")
	cfg := DefaultConfig()
	cfg.Dt = 1800
	cfg.Bodies = []bodies.Spec{
		{Name: "Sun", Mass: 1.989e30, Color: "yellow"},
		{Name: "Rock", Mass: 1e20, X: bodies.F(0), Y: bodies.F(dynamo.AU), VelocityX: bodies.F(-3e4)},
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	require.NotNil(t, got.Bodies[1].X)
	assert.Zero(t, *got.Bodies[1].X)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, writeFile(path, "table: inner\npreview_horizon: 180000\n"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "inner", cfg.Table)
	assert.Equal(t, 180000.0, cfg.PreviewHorizon)
	assert.Equal(t, DefaultDt, cfg.Dt)
}

func TestLoadIntoOverlaysPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	require.NoError(t, writeFile(path, "steps: 10\n"))

	cfg := GetPreset("jovian")
	require.NoError(t, LoadInto(path, cfg))
	assert.Equal(t, 10, cfg.Steps)
	assert.Equal(t, "Jupiter", cfg.ReferenceBody)
	assert.Equal(t, 600.0, cfg.Dt)

	assert.Error(t, LoadInto(filepath.Join(t.TempDir(), "missing.yaml"), cfg))
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	require.NotNil(t, cfg)
	assert.Equal(t, 1.98, cfg.Tuning.ProjectileExponent)

	jov := GetPreset("jovian")
	require.NotNil(t, jov)
	assert.Equal(t, "Jupiter", jov.ReferenceBody)
	require.NoError(t, jov.Validate())
	assert.Equal(t, 300*3600.0, jov.PreviewHorizon)
	assert.Equal(t, 1800, jov.PreviewSteps())

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	for _, name := range names {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}
