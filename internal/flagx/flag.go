// Package flagx holds helpers for reading a subset of command-line flags
// before the main flag set is parsed.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnv names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnv = "ROOMSYNC_CONFIG"

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-c conf.json" and "--config=conf.json" forms are recognized.
// A following token that starts with '-' is never consumed as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
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

// JsonConfigFlags returns the JSON config path given via -c or -config.
// When neither flag is present the value of ROOMSYNC_CONFIG is returned,
// which may be empty.
func JsonConfigFlags() string {
	return jsonConfigPath(os.Args[1:], os.Getenv(ConfigEnv))
}

func jsonConfigPath(args []string, fallback string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	if config == "" {
		return fallback
	}
	return config
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
