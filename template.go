package launchcfg

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	// DefaultDelim is the placeholder delimiter used on both sides of a token
	// name when a template does not specify its own.
	DefaultDelim = "@"

	// DefaultCharset is the charset templates are read and written in.
	DefaultCharset = "UTF-8"

	// tokenNamePattern matches the characters allowed in a token name.
	tokenNamePattern = `([A-Za-z0-9_.\-]+)`
)

// Template is a named source of raw text containing placeholders. Templates
// are read-only once created; rendering never modifies them.
type Template struct {
	// name identifies the template in errors and events, usually the base
	// name of the source file.
	name string

	// source is the path the contents were read from, if any.
	source string

	// dest is the output path of the rendered artifact, relative to the
	// resolver's output directory.
	dest string

	// contents is the raw template text as read from disk.
	contents []byte

	// leftDelim and rightDelim are the placeholder delimiters.
	leftDelim  string
	rightDelim string

	// charset is the IANA name of the template's encoding.
	charset string

	// hexMD5 stores the hex version of the MD5 of contents
	hexMD5 string

	pattern *regexp.Regexp
}

// TemplateInput is used as input when creating the template.
type TemplateInput struct {
	// Name of the template. Defaults to the base name of Source.
	Name string

	// Source is the path to read the template from. Only used by
	// LoadTemplate when Contents is nil.
	Source string

	// Dest is where the rendered artifact goes, relative to the output
	// directory. Defaults to Name.
	Dest string

	// Contents are the raw template contents.
	Contents []byte

	// LeftDelim and RightDelim are the placeholder delimiters. Both default
	// to "@".
	LeftDelim  string
	RightDelim string

	// Charset is the IANA charset of Contents. Defaults to UTF-8.
	Charset string
}

// NewTemplate creates a new Template from in-memory contents.
func NewTemplate(i TemplateInput) *Template {
	var t Template
	t.name = i.Name
	if t.name == "" && i.Source != "" {
		t.name = filepath.Base(i.Source)
	}
	t.source = i.Source
	t.dest = i.Dest
	if t.dest == "" {
		t.dest = t.name
	}
	t.contents = append([]byte(nil), i.Contents...)
	t.leftDelim = i.LeftDelim
	if t.leftDelim == "" {
		t.leftDelim = DefaultDelim
	}
	t.rightDelim = i.RightDelim
	if t.rightDelim == "" {
		t.rightDelim = DefaultDelim
	}
	t.charset = i.Charset
	if t.charset == "" {
		t.charset = DefaultCharset
	}
	t.pattern = regexp.MustCompile(regexp.QuoteMeta(t.leftDelim) +
		tokenNamePattern + regexp.QuoteMeta(t.rightDelim))

	// Compute the MD5, encode as hex
	hash := md5.Sum(t.contents)
	t.hexMD5 = hex.EncodeToString(hash[:])

	return &t
}

// LoadTemplate reads i.Source from disk and returns the Template for it.
// Failing to read the file is a *ConfigurationError.
func LoadTemplate(i TemplateInput) (*Template, error) {
	if i.Contents == nil {
		if i.Source == "" {
			return nil, configErr("", "template has no source", nil)
		}
		b, err := os.ReadFile(i.Source)
		if err != nil {
			return nil, configErr(i.Source, "cannot read template", err)
		}
		i.Contents = b
	}
	return NewTemplate(i), nil
}

// ID returns the identifier for this template.
func (t *Template) ID() string {
	if t.name != "" {
		return t.hexMD5 + "_" + t.name
	}
	return t.hexMD5
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Source returns the path the template was read from, if any.
func (t *Template) Source() string { return t.source }

// Dest returns the relative output path for the rendered artifact.
func (t *Template) Dest() string { return t.dest }

// Contents returns a copy of the raw template contents.
func (t *Template) Contents() []byte {
	return append([]byte(nil), t.contents...)
}

// Execute renders the template against the given store.
func (t *Template) Execute(s *Store) (Artifact, error) {
	return Render(t, s)
}

// encoding returns the text encoding for the template's charset, or nil for
// UTF-8.
func (t *Template) encoding() (encoding.Encoding, error) {
	if isUTF8(t.charset) {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(t.charset)
	if err != nil {
		return nil, configErr(t.source, "unknown charset "+t.charset, err)
	}
	if enc == nil {
		return nil, configErr(t.source, "unsupported charset "+t.charset, nil)
	}
	return enc, nil
}

// decode returns the template contents as UTF-8.
func (t *Template) decode() ([]byte, encoding.Encoding, error) {
	enc, err := t.encoding()
	if err != nil {
		return nil, nil, err
	}
	if enc == nil {
		if !utf8.Valid(t.contents) {
			return nil, nil, configErr(t.source, "template is not valid UTF-8", nil)
		}
		return t.contents, nil, nil
	}
	b, err := enc.NewDecoder().Bytes(t.contents)
	if err != nil {
		return nil, nil, configErr(t.source, "cannot decode "+t.charset, err)
	}
	return b, enc, nil
}

func encode(enc encoding.Encoding, b []byte) ([]byte, error) {
	if enc == nil {
		return b, nil
	}
	out, err := enc.NewEncoder().Bytes(b)
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}
	return out, nil
}

func isUTF8(charset string) bool {
	switch strings.ToUpper(charset) {
	case "UTF-8", "UTF8":
		return true
	}
	return false
}
