package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/openosrs/launchcfg"
	"github.com/openosrs/launchcfg/launch"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const launcherProperties = "launcher.properties"

func newLaunchCmd(v *viper.Viper) *cobra.Command {
	var (
		in       launch.Input
		settings string
	)
	cmd := &cobra.Command{
		Use:   "launch [client args...]",
		Short: "Print how the launcher would start the client",
		Long: `launch reads the launcher version from the rendered launcher.properties and
the user's settings.properties, then prints the release channel, hardware
acceleration mode and client arguments the launcher would start with.
Client arguments also come from RUNELITE_ARGS and OPENOSRS_ARGS.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newResolver(cmd, v, false)
			if err != nil {
				return err
			}
			artifacts, err := r.Resolve()
			if err != nil {
				return err
			}
			if in.LauncherVersion, err = launcherVersion(artifacts); err != nil {
				return err
			}

			if settings == "" {
				if settings, err = launch.SettingsPath(); err != nil {
					return err
				}
			}
			if in.Settings, err = launch.LoadSettings(settings); err != nil {
				return err
			}
			in.Args = args

			cfg, err := launch.Resolve(in)
			if err != nil {
				return err
			}

			channel := string(cfg.Channel)
			if cfg.AskChannel {
				channel = "(ask)"
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "version\t%s\n", cfg.LauncherVersion)
			fmt.Fprintf(tw, "channel\t%s\n", channel)
			fmt.Fprintf(tw, "mode\t%s\n", cfg.HardwareMode)
			fmt.Fprintf(tw, "nojvm\t%t\n", cfg.NoJVM)
			fmt.Fprintf(tw, "args\t%s\n", strings.Join(cfg.ClientArgs, " "))
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&settings, "settings", "", "settings.properties to read (default ~/.openosrs/settings.properties)")
	f.StringVar(&in.MinimumVersion, "min-version", "", "minimum launcher version required")
	f.BoolVar(&in.Flags.Stable, "stable", false, "use the stable channel")
	f.BoolVar(&in.Flags.Nightly, "nightly", false, "use the nightly channel")
	f.BoolVar(&in.Flags.Staging, "staging", false, "use the staging channel")
	f.StringVar(&in.Mode, "mode", "", "hardware acceleration: OFF, DIRECTDRAW or OPENGL")
	f.BoolVar(&in.NoJVM, "nojvm", false, "run the client in the launcher process")
	f.StringVar(&in.ClientArgs, "clientargs", "", "arguments passed to the client")
	return cmd
}

// launcherVersion reads the version from the rendered launcher.properties.
func launcherVersion(artifacts map[string]launchcfg.Artifact) (string, error) {
	paths := make([]string, 0, len(artifacts))
	for p := range artifacts {
		if filepath.Base(p) == launcherProperties {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return "", errors.New("no " + launcherProperties + " template")
	}
	sort.Strings(paths)
	return launch.ParseLauncherVersion(artifacts[paths[0]].Contents)
}
