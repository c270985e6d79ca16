package config

import (
	"testing"
	"time"
)

func TestShutdownTimeoutFromEnv(t *testing.T) {
	cases := []struct {
		value string
		want  time.Duration
	}{
		{"250ms", 250 * time.Millisecond},
		{"2m", 2 * time.Minute},
		{"soon", 10 * time.Second},
		{"", 10 * time.Second},
	}
	for _, tc := range cases {
		t.Setenv("SHUTDOWN_TIMEOUT", tc.value)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Server.ShutdownTimeout != tc.want {
			t.Errorf("SHUTDOWN_TIMEOUT=%q: got %v, want %v", tc.value, cfg.Server.ShutdownTimeout, tc.want)
		}
	}
}
