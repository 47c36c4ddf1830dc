package launchcfg

import (
	"bytes"

	"github.com/pkg/errors"
)

// Artifact is a template with every placeholder replaced by its token value.
type Artifact struct {
	// Name of the template the artifact was rendered from.
	Name string

	// Source is the template path, empty for in-memory templates.
	Source string

	// Dest is the output path. The resolver sets it to the full path under
	// its output directory; Render leaves it relative.
	Dest string

	// Contents is the rendered text, in the template's charset.
	Contents []byte
}

// Render substitutes every placeholder in t with its value from s.
//
// All text outside placeholders is copied byte for byte. Substitution is a
// single pass, so a placeholder carried in by a token value is not expanded;
// instead it counts as unresolved, as does any placeholder left in the
// output. If any placeholder is unresolved no artifact is returned and the
// error is an *UnresolvedPlaceholderError listing every such name.
func Render(t *Template, s *Store) (Artifact, error) {
	text, enc, err := t.decode()
	if err != nil {
		return Artifact{}, err
	}

	var (
		b       bytes.Buffer
		last    int
		missing = newStringSet()
	)
	b.Grow(len(text))
	for _, m := range t.pattern.FindAllSubmatchIndex(text, -1) {
		b.Write(text[last:m[0]])
		last = m[1]

		name := string(text[m[2]:m[3]])
		v, err := s.Resolve(name)
		if err != nil {
			var unknown *UnknownTokenError
			if !errors.As(err, &unknown) {
				return Artifact{}, errors.Wrap(err, t.name)
			}
			missing.Add(name)
			continue
		}
		b.WriteString(v)
	}
	b.Write(text[last:])

	// Only a fully substituted output can still hold placeholders, and those
	// came from values or from text joined around them.
	if missing.Len() == 0 {
		for _, name := range scan(t, b.Bytes()) {
			missing.Add(name)
		}
	}

	if missing.Len() > 0 {
		return Artifact{}, &UnresolvedPlaceholderError{
			Template: t.name,
			Names:    missing.Sorted(),
		}
	}

	out, err := encode(enc, b.Bytes())
	if err != nil {
		return Artifact{}, errors.Wrap(err, t.name)
	}

	return Artifact{
		Name:     t.name,
		Source:   t.source,
		Dest:     t.dest,
		Contents: out,
	}, nil
}

// Placeholders returns the distinct token names t references, in the order
// they first appear.
func Placeholders(t *Template) ([]string, error) {
	text, _, err := t.decode()
	if err != nil {
		return nil, err
	}
	return scan(t, text), nil
}

// scan returns the distinct placeholder names in text, in first-seen order.
func scan(t *Template, text []byte) []string {
	seen := newStringSet()
	for _, m := range t.pattern.FindAllSubmatchIndex(text, -1) {
		seen.Add(string(text[m[2]:m[3]]))
	}
	return seen.List()
}
