package launch

import (
	"strings"

	"github.com/pkg/errors"
)

// Channel is the client release stream the launcher boots.
type Channel string

const (
	// NoChannel means the user has to pick one.
	NoChannel Channel = ""
	Stable    Channel = "stable"
	Nightly   Channel = "nightly"
	Staging   Channel = "staging"
)

// ChannelFlags are the channel switches given on the command line.
type ChannelFlags struct {
	Stable  bool
	Nightly bool
	Staging bool
}

// SelectChannel picks the channel from the settings and flags. The saved
// bootstrap mode counts only when ask mode is off; flags add to it. When
// several are chosen stable wins over nightly, and nightly over staging.
func SelectChannel(s Settings, f ChannelFlags) Channel {
	stable, nightly := f.Stable, f.Nightly
	if !s.AskMode {
		switch s.BootstrapMode {
		case "STABLE":
			stable = true
		case "NIGHTLY":
			nightly = true
		}
	}
	switch {
	case stable:
		return Stable
	case nightly:
		return Nightly
	case f.Staging:
		return Staging
	}
	return NoChannel
}

// HardwareMode is the Java 2D acceleration pipeline.
type HardwareMode string

const (
	HardwareOff        HardwareMode = "OFF"
	HardwareDirectDraw HardwareMode = "DIRECTDRAW"
	HardwareOpenGL     HardwareMode = "OPENGL"
)

// DefaultHardwareMode returns the acceleration used when no --mode is given.
func DefaultHardwareMode(s Settings, goos string) HardwareMode {
	if s.DisableHw {
		return HardwareOff
	}
	switch goos {
	case "windows":
		return HardwareDirectDraw
	case "darwin":
		return HardwareOpenGL
	}
	return HardwareOff
}

// ParseHardwareMode parses a mode name, ignoring case.
func ParseHardwareMode(s string) (HardwareMode, error) {
	switch m := HardwareMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case HardwareOff, HardwareDirectDraw, HardwareOpenGL:
		return m, nil
	}
	return "", errors.Errorf("unknown hardware acceleration mode %q", s)
}
