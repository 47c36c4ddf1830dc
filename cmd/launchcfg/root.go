package main

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/openosrs/launchcfg"
	"github.com/openosrs/launchcfg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const envPrefix = "LAUNCHCFG"

// Flag names, also the viper keys.
const (
	flagBaseDir  = "basedir"
	flagOut      = "out"
	flagConfig   = "config"
	flagSet      = "set"
	flagLogLevel = "log-level"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "launchcfg",
		Short: "Render launcher resources from @token@ templates",
		Long: `launchcfg substitutes @token@ placeholders in the launcher's installer
manifests and properties file and writes the results under the build
directory. Options may also be given as LAUNCHCFG_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.String(flagBaseDir, "", "project base directory (default: config basedir or .)")
	pf.String(flagOut, "", "output directory, relative to the base directory (default: build)")
	pf.String(flagConfig, "", "TOML or YAML config file")
	pf.StringArray(flagSet, nil, "set an option as key=value (repeatable)")
	pf.String(flagLogLevel, "warn", "log level: trace, debug, info, warn, error")

	root.AddCommand(newRenderCmd(v))
	root.AddCommand(newTokensCmd(v))
	root.AddCommand(newLaunchCmd(v))
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig builds the configuration from the config file, then flags and
// environment.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	cfg := config.Default()
	if path := v.GetString(flagConfig); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if dir := v.GetString(flagBaseDir); dir != "" {
		cfg.BaseDir = dir
	}
	if out := v.GetString(flagOut); out != "" {
		cfg.OutputDir = out
	}
	sets, err := setOptions(cmd)
	if err != nil {
		return nil, err
	}
	for _, kv := range sets {
		if err := cfg.Set(kv); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setOptions returns the --set values. Without the flag they come from
// LAUNCHCFG_SET, read as one CSV record the way the flag parses a value, so
// "description=OpenOSRS nightly launcher" stays a single option.
func setOptions(cmd *cobra.Command) ([]string, error) {
	if cmd.Flags().Changed(flagSet) {
		return cmd.Flags().GetStringArray(flagSet)
	}
	env, ok := os.LookupEnv(envPrefix + "_SET")
	if !ok || strings.TrimSpace(env) == "" {
		return nil, nil
	}
	r := csv.NewReader(strings.NewReader(env))
	r.TrimLeadingSpace = true
	sets, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, envPrefix+"_SET")
	}
	return sets, nil
}

// newResolver builds the resolver for a command, logging its events.
func newResolver(cmd *cobra.Command, v *viper.Viper, backup bool) (*launchcfg.Resolver, error) {
	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if backup {
		cfg.Backup = true
	}
	in, err := cfg.ResolverInput()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), v.GetString(flagLogLevel))
	in.EventHandler = eventLogger(logger)
	return launchcfg.NewResolver(in), nil
}

func newLogger(w io.Writer, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "launchcfg",
		Level:  lvl,
		Output: w,
	})
}
