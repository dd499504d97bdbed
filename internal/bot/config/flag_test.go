package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		initial     *Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-b", "postgres", "-d", "postgres://localhost/teambot",
			"-r", "u1,u2", "-n", "30",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				DatabaseDriver:   "postgres",
				DatabaseDSN:      "postgres://localhost/teambot",
				DigestRecipients: []string{"u1", "u2"},
				NotifyInterval:   30 * time.Minute,
			}},
		{name: "Test2 no flags keeps values", args: []string{"cmd"},
			expectPanic: false,
			initial: &Config{
				EndpointAddrHTTP: ":9999",
				DatabaseDriver:   "sqlite",
				DatabaseDSN:      "file:custom.db",
				NotifyInterval:   15 * time.Minute,
			},
			expected: &Config{
				EndpointAddrHTTP: ":9999",
				DatabaseDriver:   "sqlite",
				DatabaseDSN:      "file:custom.db",
				NotifyInterval:   15 * time.Minute,
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}
			if tt.initial != nil {
				*config = *tt.initial
			}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
