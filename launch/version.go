package launch

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// VersionKey is the launcher.properties key holding the launcher version.
const VersionKey = "launcher.version"

// ErrNoVersion is returned when launcher.properties has no version.
var ErrNoVersion = errors.New(VersionKey + " is not set")

// ReadLauncherVersion returns the launcher version from a rendered
// launcher.properties file.
func ReadLauncherVersion(path string) (string, error) {
	p, err := loadProperties(path)
	if err != nil {
		return "", errors.Wrap(err, "read launcher version")
	}
	return launcherVersion(p)
}

// ParseLauncherVersion returns the launcher version from launcher.properties
// contents.
func ParseLauncherVersion(contents []byte) (string, error) {
	l := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	p, err := l.LoadBytes(contents)
	if err != nil {
		return "", errors.Wrap(err, "parse launcher version")
	}
	return launcherVersion(p)
}

func launcherVersion(p *properties.Properties) (string, error) {
	v := strings.TrimSpace(p.GetString(VersionKey, ""))
	if v == "" {
		return "", ErrNoVersion
	}
	return v, nil
}

// CheckVersion reports whether ours satisfies the minimum launcher version.
// Prerelease and build metadata are ignored on both sides. An empty value on
// either side passes.
func CheckVersion(minimum, ours string) (bool, error) {
	if minimum == "" || ours == "" {
		return true, nil
	}
	want, err := version.NewVersion(minimum)
	if err != nil {
		return false, errors.Wrap(err, "minimum launcher version")
	}
	have, err := version.NewVersion(ours)
	if err != nil {
		return false, errors.Wrap(err, "launcher version")
	}
	return !core(have).LessThan(core(want)), nil
}

// core returns v without prerelease or metadata.
func core(v *version.Version) *version.Version {
	segs := v.Segments()
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = strconv.Itoa(s)
	}
	return version.Must(version.NewVersion(strings.Join(parts, ".")))
}

var versionSep = regexp.MustCompile(`[^0-9a-zA-Z]`)

// CompareVersion orders two version strings token by token, splitting on
// anything that is not a letter or digit. Numeric tokens compare as numbers
// and sort above words; words compare case-insensitively. When one version
// is a prefix of the other, the shorter is lower. The result is -1, 0 or 1.
func CompareVersion(a, b string) int {
	ta, tb := splitVersion(a), splitVersion(b)
	for i := 0; i < len(ta) && i < len(tb); i++ {
		if c := compareToken(ta[i], tb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ta) < len(tb):
		return -1
	case len(ta) > len(tb):
		return 1
	}
	return 0
}

// splitVersion drops trailing empty tokens, so "1.0." has two tokens.
func splitVersion(v string) []string {
	toks := versionSep.Split(v, -1)
	for len(toks) > 0 && toks[len(toks)-1] == "" {
		toks = toks[:len(toks)-1]
	}
	return toks
}

func compareToken(x, y string) int {
	ix, errx := strconv.ParseInt(x, 10, 32)
	iy, erry := strconv.ParseInt(y, 10, 32)
	switch {
	case errx != nil && erry != nil:
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	case errx != nil:
		return -1
	case erry != nil:
		return 1
	case ix > iy:
		return 1
	case ix < iy:
		return -1
	}
	return 0
}
