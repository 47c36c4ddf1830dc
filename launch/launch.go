// Package launch resolves how the launcher starts the client: the release
// channel, hardware acceleration, in-process mode and client arguments, from
// the user's settings.properties, the rendered launcher.properties and the
// command line.
package launch

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
)

// ErrLauncherOutdated is returned when the launcher is older than the
// minimum version required.
var ErrLauncherOutdated = errors.New("launcher version too low")

// Input is the input structure for Resolve.
type Input struct {
	// LauncherVersion is the version from launcher.properties.
	LauncherVersion string

	// MinimumVersion is the lowest launcher version allowed. Empty skips
	// the check.
	MinimumVersion string

	// Settings are the user's saved preferences.
	Settings Settings

	// Flags select a channel.
	Flags ChannelFlags

	// Mode overrides the default hardware acceleration when set.
	Mode string

	// NoJVM runs the client in the launcher process.
	NoJVM bool

	// Args are positional launcher arguments, passed on to the client.
	Args []string

	// ClientArgs is the --clientargs value.
	ClientArgs string

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// GOOS selects the default hardware mode. Defaults to runtime.GOOS.
	GOOS string
}

// Config is a resolved launch.
type Config struct {
	LauncherVersion string
	Channel         Channel

	// AskChannel is set when no channel was chosen and the user must pick.
	AskChannel bool

	HardwareMode HardwareMode
	NoJVM        bool
	ClientArgs   []string
}

// Resolve builds the launch configuration. It fails with
// ErrLauncherOutdated when the launcher is below MinimumVersion.
func Resolve(i Input) (*Config, error) {
	ok, err := CheckVersion(i.MinimumVersion, i.LauncherVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrLauncherOutdated, "%s < %s",
			i.LauncherVersion, i.MinimumVersion)
	}

	goos := i.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	mode := DefaultHardwareMode(i.Settings, goos)
	if i.Mode != "" {
		if mode, err = ParseHardwareMode(i.Mode); err != nil {
			return nil, err
		}
	}

	getenv := i.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	channel := SelectChannel(i.Settings, i.Flags)
	return &Config{
		LauncherVersion: i.LauncherVersion,
		Channel:         channel,
		AskChannel:      channel == NoChannel,
		HardwareMode:    mode,
		NoJVM:           i.NoJVM || i.Settings.NoJVM,
		ClientArgs:      ClientArgs(i.Args, i.ClientArgs, getenv),
	}, nil
}
