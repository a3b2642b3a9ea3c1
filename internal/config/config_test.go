package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RPC_URL != "https://api.mainnet-beta.solana.com" {
		t.Fatalf("RPC_URL = %q", cfg.RPC_URL)
	}
	if cfg.SLIPPAGE_BPS != 100 {
		t.Fatalf("SLIPPAGE_BPS = %d", cfg.SLIPPAGE_BPS)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadReadsFileAndAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	file := `TELEGRAM_TOKEN: "file-token"
RPC_URL: "https://rpc.from-file.example"
SLIPPAGE_BPS: 250
`
	if err := os.WriteFile(path, []byte(file), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TELEGRAM_TOKEN", "env-token")
	t.Setenv("SLIPPAGE_BPS", "50")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// env wins over file
	if cfg.TELEGRAM_TOKEN != "env-token" {
		t.Fatalf("TELEGRAM_TOKEN = %q", cfg.TELEGRAM_TOKEN)
	}
	if cfg.SLIPPAGE_BPS != 50 {
		t.Fatalf("SLIPPAGE_BPS = %d", cfg.SLIPPAGE_BPS)
	}
	// file wins over default
	if cfg.RPC_URL != "https://rpc.from-file.example" {
		t.Fatalf("RPC_URL = %q", cfg.RPC_URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.TELEGRAM_TOKEN = "tok" }, false},
		{"missing token", func(c *Config) {}, true},
		{"missing rpc", func(c *Config) { c.TELEGRAM_TOKEN = "tok"; c.RPC_URL = "" }, true},
		{"slippage zero", func(c *Config) { c.TELEGRAM_TOKEN = "tok"; c.SLIPPAGE_BPS = 0 }, true},
		{"slippage too high", func(c *Config) { c.TELEGRAM_TOKEN = "tok"; c.SLIPPAGE_BPS = 9000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.TELEGRAM_TOKEN = "tok"
	cfg.SLIPPAGE_BPS = 300

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TELEGRAM_TOKEN != "tok" || got.SLIPPAGE_BPS != 300 {
		t.Fatalf("round trip = %+v", got)
	}
}
