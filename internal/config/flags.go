package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagListen     = flag.String("listen", "", "HTTP listen address")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagOverlap    = flag.String("overlap", "", "Overlap test: interval or corner")
	flagDepthClamp = flag.String("depth-clamp", "", "Outer dimension bounding Z: width or depth")
	flagWriteTo    = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, or "".
func WriteConfigPath() string {
	return *flagWriteTo
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagListen != "" {
		cfg.Server.Listen = *flagListen
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagOverlap != "" {
		cfg.Placement.OverlapMode = *flagOverlap
	}
	if *flagDepthClamp != "" {
		cfg.Placement.DepthClampAxis = *flagDepthClamp
	}
}
