package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/teambot/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP gateway bind address (e.g., ":8080")
//	-b string   database driver, "sqlite" or "postgres"
//	-d string   database DSN
//	-r string   comma-separated digest recipient identifiers
//	-n int      notifier trigger interval, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-d", "-r", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port for the HTTP gateway")
	fs.StringVar(&config.DatabaseDriver, "b", config.DatabaseDriver, "database driver (sqlite or postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	recipients := fs.String("r", strings.Join(config.DigestRecipients, ","), "comma-separated digest recipients")
	notifyInterval := fs.Int("n", int(config.NotifyInterval.Minutes()), "notify interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *recipients != "" {
		config.DigestRecipients = strings.Split(*recipients, ",")
	}
	config.NotifyInterval = time.Duration(*notifyInterval) * time.Minute
}
