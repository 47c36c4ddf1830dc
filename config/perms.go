package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// parsePerms parses an octal file mode such as "0644".
func parsePerms(s string) (os.FileMode, error) {
	p, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, errors.Wrap(err, "perms")
	}
	if p > 0777 {
		return 0, errors.Errorf("perms: %q out of range", s)
	}
	return os.FileMode(p), nil
}
