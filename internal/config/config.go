// Package config handles configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/boxstage/internal/placement"
)

// Config holds all settings shared by the viewer and the server.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Outer     OuterConfig     `yaml:"outer"`
	Placement PlacementConfig `yaml:"placement"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds desktop window settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Samples    int  `yaml:"samples"` // MSAA, 0 = off
}

// CameraConfig holds the perspective camera and orbit limits.
type CameraConfig struct {
	FOV         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position,flow"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
}

// OuterConfig is the container's base geometry.
type OuterConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`
}

// PlacementConfig selects the drag constraint variants.
type PlacementConfig struct {
	OverlapMode    string `yaml:"overlap_mode"`     // interval | corner
	DepthClampAxis string `yaml:"depth_clamp_axis"` // width | depth
}

// SpawnConfig holds the default spawn request.
type SpawnConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`
	Color  string  `yaml:"color"`
}

// ServerConfig holds browser host settings.
type ServerConfig struct {
	Listen    string `yaml:"listen"`
	StaticDir string `yaml:"static_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // console | json
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Samples:    4,
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        1,
			Far:         1000,
			Position:    [3]float32{100, 0, 0},
			MinDistance: 1,
			MaxDistance: 150,
		},
		Outer: OuterConfig{
			Width:  50,
			Height: 25,
			Depth:  50,
		},
		Placement: PlacementConfig{
			OverlapMode:    "interval",
			DepthClampAxis: "width",
		},
		Spawn: SpawnConfig{
			Width:  10,
			Height: 10,
			Depth:  10,
			Color:  "#00ff00",
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}

// Validate reports settings the application cannot run with.
func (c *Config) Validate() error {
	if c.Outer.Width <= 0 || c.Outer.Height <= 0 || c.Outer.Depth <= 0 {
		return fmt.Errorf("outer dimensions must be positive, got %vx%vx%v",
			c.Outer.Width, c.Outer.Height, c.Outer.Depth)
	}
	if _, err := placement.ParseOverlapMode(c.Placement.OverlapMode); err != nil {
		return fmt.Errorf("placement.overlap_mode: %w", err)
	}
	if _, err := placement.ParseDepthSource(c.Placement.DepthClampAxis); err != nil {
		return fmt.Errorf("placement.depth_clamp_axis: %w", err)
	}
	if _, err := placement.ParseColor(c.Spawn.Color); err != nil {
		return fmt.Errorf("spawn.color: %w", err)
	}
	if c.Window.Samples < 0 {
		return fmt.Errorf("window.samples must not be negative, got %d", c.Window.Samples)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range invalid: near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.MaxDistance > 0 && c.Camera.MinDistance > c.Camera.MaxDistance {
		return fmt.Errorf("camera distance range invalid: min=%v max=%v", c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}
