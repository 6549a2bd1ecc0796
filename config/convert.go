package config

import (
	"github.com/A5-Website/atom-5-nexus/animation"
	"github.com/A5-Website/atom-5-nexus/builder"
	"github.com/A5-Website/atom-5-nexus/contact"
	"github.com/A5-Website/atom-5-nexus/geometry"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/metrics"
	"github.com/A5-Website/atom-5-nexus/propagation"
	"github.com/A5-Website/atom-5-nexus/scene"
)

// Profile returns the edge fade profile.
func (c *Config) Profile() geometry.Profile {
	mode, _ := geometry.ParseFadeMode(c.Scene.Fade)
	return geometry.Profile{
		Mode:    mode,
		Radius:  geometry.Range{Min: c.Scene.RadiusMin, Max: c.Scene.RadiusMax},
		Opacity: geometry.Range{Min: c.Scene.OpacityMin, Max: c.Scene.OpacityMax},
	}
}

// SceneParams returns the construction input of scene.Build.
func (c *Config) SceneParams() scene.Params {
	s := c.Scene
	return scene.Params{
		Graph: builder.ProximityParams{
			NodeCount:             s.NodeCount,
			RegionHalfExtent:      s.RegionHalfExtent,
			MaxConnectionDistance: s.MaxConnectionDistance,
			MinConnections:        s.MinConnections,
			MaxConnections:        s.MaxConnections,
		},
		Seed:        s.Seed,
		Planar:      s.Planar,
		NodeSizeMin: s.NodeSizeMin,
		NodeSizeMax: s.NodeSizeMax,
		Geometry: []geometry.Option{
			geometry.WithCurvature(s.Curvature),
			geometry.WithSegments(s.SegmentsPerCurve),
			geometry.WithProfile(c.Profile()),
		},
	}
}

// PropagationOptions returns the cascade settings. Seeding is left to the
// scene driver.
func (c *Config) PropagationOptions() []propagation.Option {
	p := c.Propagation
	opts := []propagation.Option{
		propagation.WithFlowProbability(p.FlowProbability),
		propagation.WithMaxGenerations(p.MaxGenerations),
		propagation.WithStaggerInterval(p.StaggerInterval),
		propagation.WithDuration(p.Duration),
		propagation.WithTriggerDuration(p.TriggerDuration),
	}
	if p.FollowIncoming {
		opts = append(opts, propagation.WithFollowIncoming())
	}
	return opts
}

// AnimationOptions returns the pulse rendering settings.
func (c *Config) AnimationOptions() []animation.Option {
	a := c.Animation
	opts := []animation.Option{
		animation.WithGlowFloor(a.GlowFloor),
		animation.WithGlowLength(a.GlowLength),
		animation.WithDrift(a.DriftAmplitude, animation.DefaultDriftFrequency),
		animation.WithAmbientFlow(a.AmbientFlow.Period, a.AmbientFlow.Delay),
	}
	if a.CurvedHeads {
		opts = append(opts, animation.WithHeadMode(animation.HeadCurve))
	}
	return opts
}

// DriverOptions returns every scene.Driver option derived from c.
func (c *Config) DriverOptions(log logging.Logger, reg *metrics.Registry) []scene.Option {
	return []scene.Option{
		scene.WithLogger(log),
		scene.WithMetrics(reg),
		scene.WithFrameInterval(c.Server.FrameInterval),
		scene.WithPropagation(c.PropagationOptions()...),
		scene.WithAnimation(c.AnimationOptions()...),
	}
}

// ContactOptions returns the relay settings.
func (c *Config) ContactOptions(log logging.Logger) []contact.Option {
	return []contact.Option{
		contact.WithAddresses(c.Contact.From, c.Contact.To...),
		contact.WithLogger(log),
	}
}
