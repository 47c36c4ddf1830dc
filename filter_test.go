package launchcfg

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleStore() *Store {
	return NewStoreFrom(map[string]string{
		"version":  "3.0.0",
		"artifact": "launcher",
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		left     string
		right    string
		exp      string
	}{
		{
			"spec_example",
			"v=@version@ a=@artifact@",
			"", "",
			"v=3.0.0 a=launcher",
		},
		{
			"no_placeholders",
			"plain text\nwith lines\n",
			"", "",
			"plain text\nwith lines\n",
		},
		{
			"empty",
			"",
			"", "",
			"",
		},
		{
			"repeated",
			"@version@-@version@",
			"", "",
			"3.0.0-3.0.0",
		},
		{
			"adjacent",
			"@artifact@@version@",
			"", "",
			"launcher3.0.0",
		},
		{
			"lone_delimiter",
			"mail me@example.com @ @version@",
			"", "",
			"mail me@example.com @ 3.0.0",
		},
		{
			"empty_name",
			"@@version@",
			"", "",
			"@3.0.0",
		},
		{
			"whitespace_not_a_name",
			"@ version @",
			"", "",
			"@ version @",
		},
		{
			"custom_delims",
			"v=${version} keep=@version@",
			"${", "}",
			"v=3.0.0 keep=@version@",
		},
		{
			"unicode_passthrough",
			"naïve ✓ @artifact@",
			"", "",
			"naïve ✓ launcher",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := NewTemplate(TemplateInput{
				Name:       tc.name,
				Contents:   []byte(tc.contents),
				LeftDelim:  tc.left,
				RightDelim: tc.right,
			})
			a, err := Render(tmpl, exampleStore())
			require.NoError(t, err)
			assert.Equal(t, tc.exp, string(a.Contents))
			assert.Equal(t, tc.name, a.Name)
		})
	}
}

func TestRenderPlaceholderInValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		tokens   map[string]string
		contents string
		missing  []string
	}{
		{
			"unknown_in_value",
			map[string]string{"description": "see @support@"},
			"Comment=@description@",
			[]string{"support"},
		},
		{
			"known_in_value_not_expanded",
			map[string]string{"a": "@b@", "b": "x"},
			"x=@a@",
			[]string{"b"},
		},
		{
			"formed_across_value_boundary",
			map[string]string{"a": "@ver"},
			"@a@sion@",
			[]string{"version"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := NewTemplate(TemplateInput{Name: tc.name, Contents: []byte(tc.contents)})
			a, err := Render(tmpl, NewStoreFrom(tc.tokens))

			var uerr *UnresolvedPlaceholderError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tc.missing, uerr.Names)
			assert.Nil(t, a.Contents)
		})
	}
}

func TestRenderValueWithLoneDelimiter(t *testing.T) {
	t.Parallel()
	s := NewStoreFrom(map[string]string{"contact": "support@openosrs.com"})
	tmpl := NewTemplate(TemplateInput{Name: "t", Contents: []byte("mail=@contact@")})

	a, err := Render(tmpl, s)
	require.NoError(t, err)
	assert.Equal(t, "mail=support@openosrs.com", string(a.Contents))
}

func TestRenderMissing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		missing  []string
	}{
		{"spec_example", "x=@missing@", []string{"missing"}},
		{"all_reported", "@zeta@ @version@ @alpha@ @zeta@", []string{"alpha", "zeta"}},
		{"dotted", "@project.version@", []string{"project.version"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := NewTemplate(TemplateInput{Name: tc.name, Contents: []byte(tc.contents)})
			a, err := Render(tmpl, exampleStore())

			var uerr *UnresolvedPlaceholderError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tc.missing, uerr.Names)
			assert.Nil(t, a.Contents)

			var unknown *UnknownTokenError
			require.True(t, errors.As(err, &unknown))
			assert.Contains(t, tc.missing, unknown.Name)
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()
	tmpl := NewTemplate(TemplateInput{
		Name:     "props",
		Contents: []byte("launcher.version=@version@\nname=@artifact@\n"),
	})
	first, err := Render(tmpl, exampleStore())
	require.NoError(t, err)

	again, err := Render(NewTemplate(TemplateInput{
		Name:     "props",
		Contents: first.Contents,
	}), exampleStore())
	require.NoError(t, err)
	assert.Equal(t, first.Contents, again.Contents)
}

// Every template built only from known tokens renders with no placeholder
// left behind.
func TestRenderResolvesAll(t *testing.T) {
	t.Parallel()
	names := []string{"basedir", "finalName", "artifact", "version", "group", "description"}
	s := NewStore()
	for _, n := range names {
		s.Set(n, strings.ToUpper(n))
	}

	for i := 0; i < 50; i++ {
		var b strings.Builder
		for j := 0; j <= i%7; j++ {
			n := names[(i*3+j)%len(names)]
			fmt.Fprintf(&b, "k%d=@%s@;", j, n)
		}
		tmpl := NewTemplate(TemplateInput{Name: "gen", Contents: []byte(b.String())})
		a, err := Render(tmpl, s)
		require.NoError(t, err)

		left, err := Placeholders(NewTemplate(TemplateInput{Name: "out", Contents: a.Contents}))
		require.NoError(t, err)
		assert.Empty(t, left, "input %q", b.String())
	}
}

func TestRenderCharset(t *testing.T) {
	t.Parallel()

	t.Run("latin1", func(t *testing.T) {
		s := NewStoreFrom(map[string]string{"name": "é"})
		tmpl := NewTemplate(TemplateInput{
			Name:     "latin1",
			Contents: []byte("caf\xe9 @name@"),
			Charset:  "ISO-8859-1",
		})
		a, err := Render(tmpl, s)
		require.NoError(t, err)
		assert.Equal(t, []byte("caf\xe9 \xe9"), a.Contents)
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		tmpl := NewTemplate(TemplateInput{Name: "bad", Contents: []byte("caf\xe9")})
		_, err := Render(tmpl, exampleStore())
		var cerr *ConfigurationError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("unknown_charset", func(t *testing.T) {
		tmpl := NewTemplate(TemplateInput{
			Name:     "bad",
			Contents: []byte("x"),
			Charset:  "no-such-charset",
		})
		_, err := Render(tmpl, exampleStore())
		var cerr *ConfigurationError
		assert.ErrorAs(t, err, &cerr)
	})
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()
	tmpl := NewTemplate(TemplateInput{
		Name:     "t",
		Contents: []byte("@version@ @artifact@ @version@ @project.group@"),
	})
	names, err := Placeholders(tmpl)
	require.NoError(t, err)
	assert.Equal(t, []string{"version", "artifact", "project.group"}, names)
}

func TestTemplateExecute(t *testing.T) {
	t.Parallel()
	tmpl := NewTemplate(TemplateInput{Name: "t", Contents: []byte("@artifact@")})
	a, err := tmpl.Execute(exampleStore())
	require.NoError(t, err)
	assert.Equal(t, "launcher", string(a.Contents))
}
