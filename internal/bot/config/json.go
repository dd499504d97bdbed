package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/teambot/internal/flagx"
	"github.com/dmitrijs2005/teambot/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "30m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	DigestRecipients []string       `json:"digest_recipients"`
	NotifyInterval   timex.Duration `json:"notify_interval"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDriver != "" {
		config.DatabaseDriver = c.DatabaseDriver
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if len(c.DigestRecipients) > 0 {
		config.DigestRecipients = c.DigestRecipients
	}
	if c.NotifyInterval.Duration > 0 {
		config.NotifyInterval = time.Duration(c.NotifyInterval.Duration)
	}
}
