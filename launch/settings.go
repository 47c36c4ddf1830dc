package launch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// Keys read from the user's settings.properties.
const (
	KeyAskMode       = "openosrs.askMode"
	KeyBootstrapMode = "openosrs.bootstrapMode"
	KeyDisableHw     = "openosrs.disableHw"
	KeyNoJVM         = "openosrs.noJvm"
)

// Settings are the launcher preferences the client stores between runs.
type Settings struct {
	// AskMode makes the launcher ask for a channel at start. Defaults to
	// true when the key is absent.
	AskMode bool

	// BootstrapMode is the channel remembered when AskMode is off: "STABLE"
	// or "NIGHTLY".
	BootstrapMode string

	// DisableHw turns off hardware acceleration by default.
	DisableHw bool

	// NoJVM runs the client inside the launcher process.
	NoJVM bool
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{AskMode: true}
}

// SettingsPath returns ~/.openosrs/settings.properties.
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "settings path")
	}
	return filepath.Join(home, ".openosrs", "settings.properties"), nil
}

// LoadSettings reads settings from a .properties file. A missing file gives
// DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	p, err := loadProperties(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, errors.Wrap(err, "load settings")
	}
	return ParseSettings(p), nil
}

// ParseSettings reads settings from loaded properties. Booleans are true
// only for "true" in any case; anything else is false.
func ParseSettings(p *properties.Properties) Settings {
	s := DefaultSettings()
	if v, ok := p.Get(KeyAskMode); ok {
		s.AskMode = isTrue(v)
	}
	s.BootstrapMode = p.GetString(KeyBootstrapMode, "")
	s.DisableHw = isTrue(p.GetString(KeyDisableHw, ""))
	s.NoJVM = isTrue(p.GetString(KeyNoJVM, ""))
	return s
}

func isTrue(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// loadProperties reads a Latin-1 .properties file with ${} expansion off.
func loadProperties(path string) (*properties.Properties, error) {
	l := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	return l.LoadFile(path)
}
