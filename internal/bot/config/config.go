// Package config handles configuration for the bot process,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the team assistant bot.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP gateway.
//   - DatabaseDriver: persistence backend, "sqlite" (embedded, default) or "postgres".
//   - DatabaseDSN: DSN for the selected driver.
//   - DigestRecipients: user identifiers the periodic broadcast is sent to.
//   - NotifyInterval: how often the notifier run is triggered.
type Config struct {
	EndpointAddrHTTP string
	DatabaseDriver   string
	DatabaseDSN      string
	DigestRecipients []string
	NotifyInterval   time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:teambot.db"
	c.DigestRecipients = nil
	c.NotifyInterval = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
