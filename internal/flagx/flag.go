// Package flagx lets each configuration layer pick its own flags out of the
// shared command line, so a flag.FlagSet never fails on flags it does not
// define.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments that belong to one of names (given with a
// single dash, e.g. "-t"). A flag may carry its value inline (-t=30s) or as
// the next argument (-t 30s); the next argument counts as the value unless
// it starts with '-'. Double-dash spellings match their single-dash name.
func FilterArgs(args []string, names ...string) []string {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, inline := strings.Cut(arg, "=")
		if strings.HasPrefix(name, "--") {
			name = name[1:]
		}
		if !allowed[name] {
			continue
		}

		out = append(out, arg)
		if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, "-c", "-config"))

	return path
}
