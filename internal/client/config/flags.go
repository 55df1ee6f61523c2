package config

import (
	"flag"
	"io"

	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/flagx"
	"github.com/dmitrijs2005/lostfound/internal/timex"
)

// parseFlags overlays cfg with -s, -f and -t (or their long forms). Other
// arguments are left to the command tree.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-s", "--store", "-f", "--log-format", "-t", "--auth-delay"})

	fs := flag.NewFlagSet("lostfound", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	authDelay := int(cfg.AuthDelay.Milliseconds())

	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the session database")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "path of the session database")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.IntVar(&authDelay, "t", authDelay, "simulated authentication delay (in milliseconds)")
	fs.IntVar(&authDelay, "auth-delay", authDelay, "simulated authentication delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		return oops.Code("CONFIG_FLAGS").Wrapf(err, "parse flags")
	}

	cfg.AuthDelay = timex.Millis(authDelay)
	return nil
}
