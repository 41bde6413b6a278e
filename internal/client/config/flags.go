package config

import (
	"flag"
	"os"
	"time"

	"github.com/dsmirnov/stockfolio/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL (e.g., "http://127.0.0.1:8080")
//	-f string   local session database path
//	-t int      HTTP request timeout, seconds
//
// os.Args is first filtered with flagx.FilterArgs so this flag set does not
// collide with flags owned by other packages.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "server base URL")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "local database path")

	timeout := int(config.RequestTimeout / time.Second)
	fs.IntVar(&timeout, "t", timeout, "request timeout, seconds")

	_ = fs.Parse(args)

	config.RequestTimeout = time.Duration(timeout) * time.Second
}
