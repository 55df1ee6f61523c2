// Package flagx lets several loaders share one command line.
//
// Each loader filters the arguments down to the flags it owns before
// parsing them, so the config loader and the command tree never reject
// each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// ConfigFlags are the spellings accepted for the config file flag.
var ConfigFlags = []string{"-c", "-config", "--config"}

// FilterArgs returns the arguments that belong to allowedFlags, keeping
// their values. Both "-f value" and "-f=value" forms are recognized; a
// following argument starting with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigPath returns the config file named by -c, -config or --config in
// args, or "" when none is given. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFlags))

	return path
}
