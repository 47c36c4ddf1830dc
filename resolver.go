package launchcfg

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/openosrs/launchcfg/events"
	"github.com/pkg/errors"
)

// Recognized option names. Each becomes a token of the same name.
const (
	OptBaseDir     = "basedir"
	OptFinalName   = "finalName"
	OptArtifact    = "artifact"
	OptVersion     = "version"
	OptGroup       = "group"
	OptDescription = "description"
)

// DefaultOutputDir is the output directory, relative to the base directory,
// used when none is given.
const DefaultOutputDir = "build"

// optionNames lists the recognized options in display order.
var optionNames = []string{
	OptBaseDir, OptFinalName, OptArtifact, OptVersion, OptGroup, OptDescription,
}

// optionAliases are additional token names registered for an option. They
// are also accepted as option names.
var optionAliases = map[string]string{
	"project.version": OptVersion,
	"project.group":   OptGroup,
}

// DefaultOptions returns the option values used when a ResolverInput leaves
// them unset. basedir is filled in from the base directory.
func DefaultOptions() map[string]string {
	return map[string]string{
		OptFinalName:   "OpenOSRS",
		OptArtifact:    "launcher",
		OptVersion:     "3.0.0",
		OptGroup:       "com.openosrs",
		OptDescription: "OpenOSRS launcher",
	}
}

// DefaultTemplates returns the known templates. Sources are relative to the
// base directory, destinations to the output directory.
func DefaultTemplates() []TemplateInput {
	const filtered = "filtered-resources"
	return []TemplateInput{
		{Source: "packr/Info.plist", Dest: filepath.Join(filtered, "Info.plist")},
		{Source: "innosetup/openosrs.iss", Dest: filepath.Join(filtered, "openosrs.iss")},
		{Source: "innosetup/openosrs32.iss", Dest: filepath.Join(filtered, "openosrs32.iss")},
		{Source: "appimage/openosrs.desktop", Dest: filepath.Join(filtered, "openosrs.desktop")},
		{
			Source: "src/main/resources/launcher.properties",
			Dest:   filepath.Join("resources", "main", "net", "runelite", "launcher", "launcher.properties"),
		},
	}
}

// ResolverInput is the input structure for NewResolver.
type ResolverInput struct {
	// BaseDir is the project directory templates are read from. Required.
	BaseDir string

	// OutputDir is where artifacts are written. Relative paths are taken
	// from BaseDir. Defaults to BaseDir/build.
	OutputDir string

	// Options override the DefaultOptions. Keys must be recognized option
	// names or their aliases.
	Options map[string]string

	// Templates to render. Defaults to DefaultTemplates.
	Templates []TemplateInput

	// Perms sets the mode of written files. Zero keeps the mode of existing
	// files and uses 0644 for new ones.
	Perms os.FileMode

	// Backup is called for each existing file before it is replaced.
	Backup BackupFunc

	// EventHandler receives progress events. Optional.
	EventHandler events.EventHandler
}

// Resolver composes a token Store and the known templates into the rendered
// launch configuration.
type Resolver struct {
	baseDir   string
	outputDir string
	options   map[string]string
	templates []TemplateInput
	perms     os.FileMode
	backup    BackupFunc
	event     events.EventHandler
}

// WriteResult is the outcome of writing one artifact.
type WriteResult struct {
	Path string
	RenderResult
}

// NewResolver returns a Resolver for the given input. Inputs are validated
// when the resolver runs, not here.
func NewResolver(i ResolverInput) *Resolver {
	templates := i.Templates
	if len(templates) == 0 {
		templates = DefaultTemplates()
	}
	options := make(map[string]string, len(i.Options))
	for k, v := range i.Options {
		options[k] = v
	}
	return &Resolver{
		baseDir:   i.BaseDir,
		outputDir: i.OutputDir,
		options:   options,
		templates: append([]TemplateInput(nil), templates...),
		perms:     i.Perms,
		backup:    i.Backup,
		event:     i.EventHandler,
	}
}

// Tokens validates the base directory and options and returns the populated
// token Store.
func (r *Resolver) Tokens() (*Store, error) {
	base, err := r.checkBaseDir()
	if err != nil {
		return nil, err
	}
	return r.tokens(base)
}

// Resolve renders every template and returns the artifacts keyed by their
// output path. It either renders all of them or returns an error; nothing is
// written to disk.
func (r *Resolver) Resolve() (map[string]Artifact, error) {
	base, err := r.checkBaseDir()
	if err != nil {
		return nil, err
	}
	store, err := r.tokens(base)
	if err != nil {
		return nil, err
	}
	out := r.outputPath(base)
	r.event.Emit(events.Trace{ID: base, Message: "rendering into " + out})

	templates, err := r.loadTemplates(base)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string]Artifact, len(templates))
	for _, tmpl := range templates {
		dest, err := destPath(out, tmpl.Dest())
		if err != nil {
			return nil, err
		}
		if _, dup := artifacts[dest]; dup {
			return nil, configErr(dest, "more than one template renders to this path", nil)
		}

		a, err := Render(tmpl, store)
		if err != nil {
			r.event.Emit(events.RenderFailed{ID: tmpl.ID(), Error: err})
			return nil, err
		}
		a.Dest = dest
		artifacts[dest] = a
		r.event.Emit(events.TemplateRendered{ID: tmpl.ID(), Dest: dest})
	}
	return artifacts, nil
}

// Templates loads the configured templates without rendering them.
func (r *Resolver) Templates() ([]*Template, error) {
	base, err := r.checkBaseDir()
	if err != nil {
		return nil, err
	}
	return r.loadTemplates(base)
}

func (r *Resolver) loadTemplates(base string) ([]*Template, error) {
	templates := make([]*Template, 0, len(r.templates))
	for _, ti := range r.templates {
		if ti.Source != "" && !filepath.IsAbs(ti.Source) {
			ti.Source = filepath.Join(base, ti.Source)
		}
		tmpl, err := LoadTemplate(ti)
		if err != nil {
			return nil, err
		}
		r.event.Emit(events.TemplateLoaded{
			ID: tmpl.ID(), Source: tmpl.Source(), Size: len(tmpl.contents),
		})
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Write writes artifacts to their destinations, creating directories as
// needed. Either every changed artifact is written or, on error, none are.
func (r *Resolver) Write(artifacts map[string]Artifact) ([]WriteResult, error) {
	paths := make([]string, 0, len(artifacts))
	for p := range artifacts {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	// Every artifact goes to a temporary file beside its destination first;
	// only then are they renamed into place. A failed rename reverts the
	// ones already moved.
	staged := make([]*stagedWrite, 0, len(paths))
	results := make([]WriteResult, 0, len(paths))
	discard := func() {
		for _, w := range staged {
			w.discard()
		}
	}
	for _, p := range paths {
		fr := NewFileRenderer(FileRendererInput{
			CreateDestDirs: true,
			Path:           p,
			Perms:          r.perms,
			Backup:         r.backup,
		})
		w, rr, err := fr.stage(artifacts[p].Contents)
		if err != nil {
			discard()
			return nil, errors.Wrap(err, p)
		}
		if w != nil {
			staged = append(staged, w)
		}
		results = append(results, WriteResult{Path: p, RenderResult: rr})
	}

	for i, w := range staged {
		if err := w.commit(); err != nil {
			for j := i - 1; j >= 0; j-- {
				staged[j].revert() // best effort
			}
			for _, rest := range staged[i:] {
				rest.discard()
			}
			return nil, errors.Wrap(err, w.path)
		}
	}

	for _, res := range results {
		if res.DidRender {
			r.event.Emit(events.ArtifactWritten{
				Path: res.Path, Size: len(artifacts[res.Path].Contents)})
		} else {
			r.event.Emit(events.ArtifactUnchanged{Path: res.Path})
		}
	}
	return results, nil
}

// Run resolves every template and, only if all rendered, writes them.
func (r *Resolver) Run() ([]WriteResult, error) {
	artifacts, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	return r.Write(artifacts)
}

// checkBaseDir returns the absolute base directory after making sure it
// exists, is a directory and can be listed.
func (r *Resolver) checkBaseDir() (string, error) {
	if r.baseDir == "" {
		return "", configErr("", "base directory not set", nil)
	}
	base, err := filepath.Abs(r.baseDir)
	if err != nil {
		return "", configErr(r.baseDir, "invalid base directory", err)
	}
	info, err := os.Stat(base)
	switch {
	case os.IsNotExist(err):
		return "", configErr(base, "base directory does not exist", err)
	case err != nil:
		return "", configErr(base, "cannot stat base directory", err)
	case !info.IsDir():
		return "", configErr(base, "base directory is not a directory", nil)
	}

	f, err := os.Open(base)
	if err != nil {
		return "", configErr(base, "base directory is not readable", err)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return "", configErr(base, "base directory is not readable", err)
	}
	return base, nil
}

// tokens builds the Store from the defaults, the base directory and the
// configured options.
func (r *Resolver) tokens(base string) (*Store, error) {
	values := DefaultOptions()
	values[OptBaseDir] = base
	// Option names first, then aliases, so an alias set alongside its
	// option wins regardless of map order.
	var aliased []string
	for k, v := range r.options {
		name, ok := canonicalOption(k)
		if !ok {
			return nil, configErr("", "unrecognized option "+strconv.Quote(k), nil)
		}
		if name != k {
			aliased = append(aliased, k)
			continue
		}
		values[name] = v
	}
	sort.Strings(aliased)
	for _, k := range aliased {
		name, _ := canonicalOption(k)
		values[name] = r.options[k]
	}
	if _, err := goversion.NewVersion(values[OptVersion]); err != nil {
		return nil, configErr("", "invalid version "+values[OptVersion], err)
	}

	store := NewStore()
	for _, name := range optionNames {
		r.setToken(store, name, values[name])
	}
	for alias, name := range optionAliases {
		r.setToken(store, alias, values[name])
	}
	return store, nil
}

func (r *Resolver) setToken(s *Store, name, value string) {
	// names come from optionNames and optionAliases, never empty
	_ = s.Set(name, value)
	r.event.Emit(events.TokenSet{Name: name, Value: value})
}

func (r *Resolver) outputPath(base string) string {
	switch {
	case r.outputDir == "":
		return filepath.Join(base, DefaultOutputDir)
	case filepath.IsAbs(r.outputDir):
		return filepath.Clean(r.outputDir)
	default:
		return filepath.Join(base, r.outputDir)
	}
}

// destPath joins dest onto the output directory, refusing paths that would
// land outside of it.
func destPath(out, dest string) (string, error) {
	if dest == "" {
		return "", configErr("", "template has no destination", nil)
	}
	p := filepath.Join(out, dest)
	rel, err := filepath.Rel(out, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", configErr(dest, "destination is outside the output directory", err)
	}
	return p, nil
}

// canonicalOption maps an option name or alias to the option it sets.
// Names match exactly; surrounding space is not trimmed.
func canonicalOption(k string) (string, bool) {
	if name, ok := optionAliases[k]; ok {
		return name, true
	}
	for _, name := range optionNames {
		if k == name {
			return name, true
		}
	}
	return "", false
}

// OptionNames returns the recognized option names followed by their aliases.
func OptionNames() []string {
	names := append([]string(nil), optionNames...)
	aliases := make([]string, 0, len(optionAliases))
	for a := range optionAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return append(names, aliases...)
}
