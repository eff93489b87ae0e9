// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/impodog/termichess/internal/config"
)

var (
	configFile = flag.String("config", "", "Configuration file (default: ./"+config.DefaultFile+" if present)")
	help       = flag.Bool("h", false, "Show help")
	version    = flag.Bool("version", false, "Show version")

	// Game mode
	remote = flag.Bool("remote", false, "Play through a relay server instead of hot-seat")
	resume = flag.Bool("resume", false, "Rejoin a remote game from the relay's stored board")

	// Display options
	unicode = flag.Bool("unicode", false, "Draw pieces with chess glyphs")
	spacing = flag.Int("spacing", 3, "Square width in unicode mode (1-5)")
	noColor = flag.Bool("nocolor", false, "Disable ANSI colours")
	noFlip  = flag.Bool("noflip", false, "Keep White at the bottom in hot-seat games")

	// Relay options
	address   = flag.String("addr", "", "Relay server address")
	room      = flag.String("room", "", "Room to join (default: let the server pick)")
	pollEvery = flag.Duration("poll", 0, "Interval between relay queries")
	white     = flag.Bool("white", true, "Seat to rejoin with -resume")

	// Logging
	logFile = flag.String("log", "", "Log file (default: stderr)")
	verbose = flag.Bool("v", false, "Verbose logging")
)

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cfg *config.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	applyDisplayFlags(cfg, set)
	applyClientFlags(cfg, set)

	if set["log"] {
		cfg.LogFile = *logFile
	}
	if set["v"] {
		cfg.Verbose = *verbose
	}
}

// applyDisplayFlags configures board rendering.
func applyDisplayFlags(cfg *config.Config, set map[string]bool) {
	if set["unicode"] {
		cfg.Display.Unicode = *unicode
	}
	if set["spacing"] {
		cfg.Display.Spacing = *spacing
	}
	if set["nocolor"] {
		cfg.Display.Color = !*noColor
	}
	if set["noflip"] {
		cfg.Display.Flip = !*noFlip
	}
}

// applyClientFlags configures the relay connection.
func applyClientFlags(cfg *config.Config, set map[string]bool) {
	if set["addr"] {
		cfg.Client.Address = *address
	}
	if set["room"] {
		cfg.Client.Room = *room
	}
	if set["poll"] {
		cfg.Client.PollInterval = config.Duration(*pollEvery)
	}
}

// pollInterval returns the configured relay polling interval.
func pollInterval(cfg *config.Config) time.Duration {
	return cfg.Client.PollInterval.Duration()
}
