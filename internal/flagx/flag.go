// Package flagx lets several loaders share one argument list: each picks out
// only the flags it owns and parses them with its own flag.FlagSet.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the arguments that belong to the named flags. Names are
// given without dashes and match both the -name and --name spellings, in the
// "-name value" and "-name=value" forms. A following token is taken as the
// value only when it does not itself start with a dash.
//
//	FilterArgs([]string{"-c", "juke.json", "-u", "http://x"}, "c", "config")
//	// => []string{"-c", "juke.json"}
func FilterArgs(args []string, names ...string) []string {
	owned := make(map[string]struct{}, len(names))
	for _, n := range names {
		owned[n] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, hasValue, ok := flagName(arg)
		if !ok {
			continue
		}
		if _, mine := owned[name]; !mine {
			continue
		}
		out = append(out, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// flagName splits "-name", "--name" and "-name=value".
func flagName(arg string) (name string, hasValue, ok bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false, false
	}
	name = strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if name == "" {
		return "", false, false
	}
	if k, _, found := strings.Cut(name, "="); found {
		return k, true, true
	}
	return name, false, true
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	return path
}
