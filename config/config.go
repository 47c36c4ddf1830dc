// Package config loads resolver settings from TOML or YAML files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/imdario/mergo"
	"github.com/openosrs/launchcfg"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config is the on-disk form of a launchcfg.ResolverInput.
type Config struct {
	BaseDir   string            `toml:"basedir" yaml:"basedir"`
	OutputDir string            `toml:"output_dir" yaml:"output_dir"`
	Backup    bool              `toml:"backup" yaml:"backup"`
	Perms     string            `toml:"perms" yaml:"perms"`
	Options   map[string]string `toml:"options" yaml:"options"`
	Templates []Template        `toml:"templates" yaml:"templates"`
}

// Template describes one template file to render.
type Template struct {
	Name       string `toml:"name" yaml:"name"`
	Source     string `toml:"source" yaml:"source"`
	Dest       string `toml:"dest" yaml:"dest"`
	Charset    string `toml:"charset" yaml:"charset"`
	LeftDelim  string `toml:"left_delim" yaml:"left_delim"`
	RightDelim string `toml:"right_delim" yaml:"right_delim"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{
		BaseDir:   ".",
		OutputDir: launchcfg.DefaultOutputDir,
		Options:   launchcfg.DefaultOptions(),
	}
	for _, t := range launchcfg.DefaultTemplates() {
		c.Templates = append(c.Templates, Template{
			Source: filepath.ToSlash(t.Source),
			Dest:   filepath.ToSlash(t.Dest),
		})
	}
	return c
}

// Parse decodes a configuration in the given format ("toml" or "yaml").
func Parse(data []byte, format string) (*Config, error) {
	var c Config
	switch strings.ToLower(format) {
	case "toml":
		md, err := toml.Decode(string(data), &c)
		if err != nil {
			return nil, errors.Wrap(err, "toml")
		}
		if und := md.Undecoded(); len(und) > 0 {
			return nil, errors.Errorf("toml: unknown keys %v", und)
		}
	case "yaml", "yml":
		if err := yaml.UnmarshalStrict(data, &c); err != nil {
			return nil, errors.Wrap(err, "yaml")
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", format)
	}
	return &c, nil
}

// LoadFile reads a configuration file, choosing the format from its
// extension, and merges it over Default.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	c, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return Merge(Default(), c)
}

// Merge layers override onto base and returns the result. Non-zero fields of
// override win; options are merged key by key; a non-empty template list
// replaces the base list.
func Merge(base, override *Config) (*Config, error) {
	out := *base
	out.Options = make(map[string]string, len(base.Options))
	for k, v := range base.Options {
		out.Options[k] = v
	}
	out.Templates = append([]Template(nil), base.Templates...)

	ov := *override
	templates := ov.Templates
	ov.Templates = nil
	if err := mergo.Merge(&out, ov, mergo.WithOverride); err != nil {
		return nil, errors.Wrap(err, "merge config")
	}
	if len(templates) > 0 {
		out.Templates = templates
	}
	return &out, nil
}

// Set applies a "key=value" override to the options.
func (c *Config) Set(kv string) error {
	k, v, ok := strings.Cut(kv, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return errors.Errorf("invalid option %q, expected key=value", kv)
	}
	if c.Options == nil {
		c.Options = make(map[string]string)
	}
	c.Options[k] = v
	return nil
}

// ResolverInput converts the configuration for launchcfg.NewResolver.
func (c *Config) ResolverInput() (launchcfg.ResolverInput, error) {
	i := launchcfg.ResolverInput{
		BaseDir:   c.BaseDir,
		OutputDir: c.OutputDir,
		Options:   c.Options,
	}
	if c.Perms != "" {
		p, err := parsePerms(c.Perms)
		if err != nil {
			return i, err
		}
		i.Perms = p
	}
	if c.Backup {
		i.Backup = launchcfg.Backup
	}
	for _, t := range c.Templates {
		if t.Source == "" {
			return i, &launchcfg.ConfigurationError{Reason: "template without source"}
		}
		i.Templates = append(i.Templates, launchcfg.TemplateInput{
			Name:       t.Name,
			Source:     filepath.FromSlash(t.Source),
			Dest:       filepath.FromSlash(t.Dest),
			Charset:    t.Charset,
			LeftDelim:  t.LeftDelim,
			RightDelim: t.RightDelim,
		})
	}
	return i, nil
}
