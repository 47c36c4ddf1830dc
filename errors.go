package launchcfg

import (
	"fmt"
	"strings"
)

// UnknownTokenError is returned when a token is looked up that has no
// registered value.
type UnknownTokenError struct {
	Name string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token %q", e.Name)
}

// UnresolvedPlaceholderError is returned by Render when one or more
// placeholders in a template reference tokens that are not in the store.
// Names holds every missing token name, sorted and without duplicates.
type UnresolvedPlaceholderError struct {
	Template string
	Names    []string
}

func (e *UnresolvedPlaceholderError) Error() string {
	msg := fmt.Sprintf("unresolved placeholders: %s", strings.Join(e.Names, ", "))
	if e.Template != "" {
		return e.Template + ": " + msg
	}
	return msg
}

// Unwrap returns an UnknownTokenError for each missing name.
func (e *UnresolvedPlaceholderError) Unwrap() []error {
	errs := make([]error, len(e.Names))
	for i, n := range e.Names {
		errs[i] = &UnknownTokenError{Name: n}
	}
	return errs
}

// ConfigurationError is returned when the resolver inputs (base directory,
// template files, options) violate a precondition.
type ConfigurationError struct {
	// Path is the file or directory involved, if any.
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(path, reason string, err error) *ConfigurationError {
	return &ConfigurationError{Path: path, Reason: reason, Err: err}
}
