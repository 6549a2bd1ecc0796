// Package config loads the runtime configuration of the nexus binaries.
//
// Values are resolved in three layers: deterministic defaults, an optional
// YAML file decoded over them, then NEXUS_* environment overrides. The
// result is validated once with struct tags and cross-field checks and is
// read-only afterwards.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/A5-Website/atom-5-nexus/contact"
	"github.com/A5-Website/atom-5-nexus/logging"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Environment overrides.
const (
	EnvAddr     = "NEXUS_ADDR"
	EnvLogLevel = "NEXUS_LOG_LEVEL"
	EnvSeed     = "NEXUS_SEED"
)

var validate = newValidator()

// newValidator reports fields by their YAML key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Config is the full configuration tree.
type Config struct {
	Server      Server      `yaml:"server"`
	Log         Log         `yaml:"log"`
	Scene       Scene       `yaml:"scene"`
	Propagation Propagation `yaml:"propagation"`
	Animation   Animation   `yaml:"animation"`
	Spontaneous Spontaneous `yaml:"spontaneous"`
	Contact     Contact     `yaml:"contact"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr            string        `yaml:"addr" validate:"required"`
	AllowOrigin     string        `yaml:"allow_origin" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	FrameInterval   time.Duration `yaml:"frame_interval" validate:"gt=0"`
}

// Log configures the structured logger.
type Log struct {
	Level string `yaml:"level" validate:"required,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// Scene configures graph construction and edge geometry.
type Scene struct {
	Seed                  int64   `yaml:"seed"`
	Planar                bool    `yaml:"planar"`
	NodeCount             int     `yaml:"node_count" validate:"gte=0,lte=5000"`
	RegionHalfExtent      float64 `yaml:"region_half_extent" validate:"gte=0"`
	MaxConnectionDistance float64 `yaml:"max_connection_distance" validate:"gte=0"`
	MinConnections        int     `yaml:"min_connections" validate:"gte=0"`
	MaxConnections        int     `yaml:"max_connections" validate:"gte=0"`
	NodeSizeMin           float64 `yaml:"node_size_min" validate:"gte=0"`
	NodeSizeMax           float64 `yaml:"node_size_max" validate:"gte=0"`
	SegmentsPerCurve      int     `yaml:"segments_per_curve" validate:"gte=1,lte=1000"`
	Curvature             float64 `yaml:"curvature" validate:"gte=0"`
	Fade                  string  `yaml:"fade" validate:"oneof=ends center"`
	RadiusMin             float64 `yaml:"radius_min" validate:"gte=0"`
	RadiusMax             float64 `yaml:"radius_max" validate:"gte=0"`
	OpacityMin            float64 `yaml:"opacity_min" validate:"gte=0,lte=1"`
	OpacityMax            float64 `yaml:"opacity_max" validate:"gte=0,lte=1"`
}

// Propagation configures pulse cascades.
type Propagation struct {
	FlowProbability float64 `yaml:"flow_probability" validate:"gte=0,lte=1"`
	MaxGenerations  int     `yaml:"max_generations" validate:"gte=0"`
	StaggerInterval float64 `yaml:"stagger_interval" validate:"gte=0"`
	Duration        float64 `yaml:"duration" validate:"gt=0"`
	TriggerDuration float64 `yaml:"trigger_duration" validate:"gte=0"`
	FollowIncoming  bool    `yaml:"follow_incoming"`
}

// Animation configures pulse rendering state.
type Animation struct {
	GlowFloor      float64     `yaml:"glow_floor" validate:"gte=0,lte=1"`
	GlowLength     float64     `yaml:"glow_length" validate:"gte=0,lte=1"`
	DriftAmplitude float64     `yaml:"drift_amplitude" validate:"gte=0"`
	CurvedHeads    bool        `yaml:"curved_heads"`
	AmbientFlow    AmbientFlow `yaml:"ambient_flow"`
}

// AmbientFlow loops a glow along every edge. A zero period disables it.
type AmbientFlow struct {
	Period float64 `yaml:"period" validate:"gte=0"`
	Delay  float64 `yaml:"delay" validate:"gte=0"`
}

// Spontaneous configures background triggers. A zero interval disables them.
type Spontaneous struct {
	Interval time.Duration `yaml:"interval" validate:"gte=0"`
}

// Contact configures the notification email of the contact relay.
type Contact struct {
	From string   `yaml:"from" validate:"required"`
	To   []string `yaml:"to" validate:"required,min=1,dive,email"`
}

// Default returns the configuration of the site background network.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			AllowOrigin:     "*",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			FrameInterval:   16 * time.Millisecond,
		},
		Log: Log{Level: "info"},
		Scene: Scene{
			Seed:                  1,
			NodeCount:             100,
			RegionHalfExtent:      7.5,
			MaxConnectionDistance: 8,
			MinConnections:        4,
			MaxConnections:        6,
			NodeSizeMin:           0.08,
			NodeSizeMax:           0.08,
			SegmentsPerCurve:      20,
			Curvature:             0.5,
			Fade:                  "ends",
			RadiusMin:             0.005,
			RadiusMax:             0.02,
			OpacityMin:            0.1,
			OpacityMax:            0.4,
		},
		Propagation: Propagation{
			FlowProbability: 0.7,
			MaxGenerations:  3,
			StaggerInterval: 0.08,
			Duration:        1.5,
		},
		Animation: Animation{
			GlowLength:     0.08,
			DriftAmplitude: 0.05,
			AmbientFlow:    AmbientFlow{Delay: 0.08},
		},
		Spontaneous: Spontaneous{Interval: 2 * time.Second},
		Contact: Contact{
			From: contact.DefaultFrom,
			To:   []string{contact.DefaultTo},
		},
	}
}

// Load reads path over the defaults, applies the environment and validates.
// An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		if err := cfg.Decode(f); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Decode merges YAML from r into c. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	return dec.Decode(c)
}

// ApplyEnv applies NEXUS_* overrides found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvSeed, v, err)
		}
		c.Scene.Seed = seed
	}

	return nil
}

// Validate checks struct tags first, then relations between fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	s := c.Scene
	switch {
	case s.MinConnections > s.MaxConnections:
		return fmt.Errorf("%w: scene.min_connections=%d > max_connections=%d", ErrInvalid, s.MinConnections, s.MaxConnections)
	case s.NodeSizeMin > s.NodeSizeMax:
		return fmt.Errorf("%w: scene.node_size_min=%g > node_size_max=%g", ErrInvalid, s.NodeSizeMin, s.NodeSizeMax)
	case s.RadiusMin > s.RadiusMax:
		return fmt.Errorf("%w: scene.radius_min=%g > radius_max=%g", ErrInvalid, s.RadiusMin, s.RadiusMax)
	case s.OpacityMin > s.OpacityMax:
		return fmt.Errorf("%w: scene.opacity_min=%g > opacity_max=%g", ErrInvalid, s.OpacityMin, s.OpacityMax)
	}

	return nil
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level { return logging.ParseLevel(c.Log.Level) }

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalid, field)
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s], got %v", ErrInvalid, field, e.Param(), e.Value())
	default:
		return fmt.Errorf("%w: %s failed %s=%s (got %v)", ErrInvalid, field, e.Tag(), e.Param(), e.Value())
	}
}
