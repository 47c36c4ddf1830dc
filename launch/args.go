package launch

import "strings"

// Environment variables holding extra client arguments.
const (
	EnvRuneLiteArgs = "RUNELITE_ARGS"
	EnvOpenOSRSArgs = "OPENOSRS_ARGS"
)

// ClientArgs returns the arguments passed to the client: the positional
// launcher arguments, then RUNELITE_ARGS, OPENOSRS_ARGS and clientArgs, each
// split on spaces with empty parts dropped. A nil getenv reads nothing from
// the environment.
func ClientArgs(positional []string, clientArgs string, getenv func(string) string) []string {
	var args []string
	args = append(args, positional...)
	if getenv != nil {
		args = append(args, splitArgs(getenv(EnvRuneLiteArgs))...)
		args = append(args, splitArgs(getenv(EnvOpenOSRSArgs))...)
	}
	return append(args, splitArgs(clientArgs)...)
}

func splitArgs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, " ") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
